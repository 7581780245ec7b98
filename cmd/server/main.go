package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/example/backoffice/internal/config"
	"github.com/example/backoffice/internal/database"
	"github.com/example/backoffice/internal/handlers"
	"github.com/example/backoffice/internal/notify"
	"github.com/example/backoffice/internal/routes"
)

func main() {
	cmd := &cli.Command{
		Name:   "server",
		Usage:  "Sandbox back-office API",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP server",
				Action: serve,
			},
			{
				Name:  "seed",
				Usage: "Insert demo catalog, clients and orders",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg := config.Load()
					db := database.Connect(cfg.DatabaseURL)
					if err := database.EnsureAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
						return err
					}
					if err := database.Seed(db); err != nil {
						return err
					}
					log.Println("Seed complete")
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(ctx context.Context, c *cli.Command) error {
	cfg := config.LoadServer()
	db := database.Connect(cfg.DatabaseURL)

	if err := database.EnsureAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}

	storage, err := handlers.NewStorage(cfg.UploadDir)
	if err != nil {
		return err
	}

	telegram := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramAdminChat)
	defer telegram.Wait()
	notifier := notify.Multi{notify.Logger{}, telegram}

	app := routes.NewApp(db, cfg, storage, notifier)

	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
	return nil
}
