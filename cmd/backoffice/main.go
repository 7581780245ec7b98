package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/example/backoffice/internal/api"
	"github.com/example/backoffice/internal/config"
	"github.com/example/backoffice/internal/lrm"
	"github.com/example/backoffice/internal/notify"
	"github.com/example/backoffice/internal/views"
)

// alerts is the admin-chat notifier opened by connect; pending messages are
// flushed before the process exits.
var alerts *notify.Telegram

func main() {
	cmd := &cli.Command{
		Name:  "backoffice",
		Usage: "Store back-office administration",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api", Usage: "API base URL (defaults to API_BASE_URL)"},
			&cli.StringFlag{Name: "token", Usage: "bearer token (defaults to API_TOKEN)"},
		},
		Commands: []*cli.Command{
			categoriesCommand(),
			productsCommand(),
			sizesCommand(),
			tablesCommand(),
			modelingCommand(),
			catalogCommand(),
			bannersCommand(),
			ordersCommand(),
			clientsCommand(),
			watchCommand(),
		},
		After: func(ctx context.Context, cmd *cli.Command) error {
			if alerts != nil {
				alerts.Wait()
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// connect loads configuration, opens an API session and builds the
// dependencies shared by every screen.
func connect(ctx context.Context, cmd *cli.Command) (views.Deps, error) {
	cfg := config.Load()
	baseURL := cfg.APIBaseURL
	if v := cmd.String("api"); v != "" {
		baseURL = v
	}
	token := cfg.APIToken
	if v := cmd.String("token"); v != "" {
		token = v
	}

	client := api.New(baseURL, api.WithTimeout(cfg.HTTPTimeout), api.WithToken(token))
	if token == "" {
		if _, err := client.Login(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return views.Deps{}, fmt.Errorf("login: %s", api.MessageOf(err, err.Error()))
		}
	}

	alerts = notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramAdminChat)
	return views.Deps{
		API: client,
		Notifier: notify.Multi{
			notify.Logger{Log: log.New(os.Stderr, "", log.LstdFlags)},
			alerts,
		},
		Interval:       cfg.PollInterval,
		MaxUploadBytes: cfg.MaxUploadBytes(),
	}, nil
}

// done turns a mutation result into the command's exit status. The
// notification has already been printed.
func done(res lrm.Result) error {
	if res.OK {
		if res.ID != "" {
			fmt.Println(res.ID)
		}
		return nil
	}
	return cli.Exit("", 1)
}

func arg(cmd *cli.Command, i int, name string) (string, error) {
	v := cmd.Args().Get(i)
	if v == "" {
		return "", cli.Exit("missing argument: "+name, 2)
	}
	return v, nil
}
