package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"servicio-usuarios/internal/pkg/database"
	"servicio-usuarios/migrations"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Aviso: .env não encontrado. Usando apenas o ambiente do sistema: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Migrações do banco do serviço de usuarios (goose, SQL embutido)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dsn, "database-url", dsn, "DSN do PostgreSQL (env DATABASE_URL)")

	run := func(name string, fn func(db *sql.DB) error) *cobra.Command {
		return &cobra.Command{
			Use:   name,
			Short: "goose " + name,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if dsn == "" {
					return fmt.Errorf("DATABASE_URL não definida (flag --database-url)")
				}
				db, err := database.NewPostgresDB(dsn)
				if err != nil {
					return err
				}
				defer db.Close()

				goose.SetBaseFS(migrations.FS)
				if err := goose.SetDialect("postgres"); err != nil {
					return err
				}
				if err := fn(db); err != nil {
					return fmt.Errorf("goose %s: %w", name, err)
				}
				fmt.Printf("goose %s success\n", name)
				return nil
			},
		}
	}

	root.AddCommand(
		run("up", func(db *sql.DB) error { return goose.Up(db, ".") }),
		run("down", func(db *sql.DB) error { return goose.Down(db, ".") }),
		run("status", func(db *sql.DB) error { return goose.Status(db, ".") }),
		run("version", func(db *sql.DB) error { return goose.Version(db, ".") }),
	)

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
