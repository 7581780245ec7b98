package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/example/backoffice/internal/api"
	"github.com/example/backoffice/internal/config"
	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/notify"
	"github.com/example/backoffice/internal/status"
	"github.com/example/backoffice/internal/views"
)

// openOrders loads the order list so a single order can be acted on.
func openOrders(ctx context.Context, cmd *cli.Command) (*views.Orders, error) {
	d, err := connect(ctx, cmd)
	if err != nil {
		return nil, err
	}
	v := views.NewOrders(d)
	if err := v.List.Load(ctx); err != nil {
		return nil, err
	}
	return v, nil
}

func ordersCommand() *cli.Command {
	return &cli.Command{
		Name:  "orders",
		Usage: "Search and update orders",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List orders, optionally by client or order id",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "client", Usage: "client id"},
					&cli.StringFlag{Name: "id", Usage: "order id"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					d, err := connect(ctx, cmd)
					if err != nil {
						return err
					}
					v := views.NewOrders(d)
					by, value := api.SearchAll, ""
					switch {
					case cmd.IsSet("id"):
						by, value = api.SearchID, cmd.String("id")
					case cmd.IsSet("client"):
						by, value = api.SearchClient, cmd.String("client")
					}
					if err := v.Search(ctx, by, value); err != nil {
						return err
					}
					renderOrders(v.List.Items())
					return nil
				},
			},
			{
				Name:      "status",
				Usage:     "Move an order to new order and payment statuses",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "order", Usage: optionValues(status.OrderStatuses())},
					&cli.StringFlag{Name: "payment", Usage: optionValues(status.PaymentStatuses())},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := arg(cmd, 0, "id")
					if err != nil {
						return err
					}
					v, err := openOrders(ctx, cmd)
					if err != nil {
						return err
					}
					order, err := v.Open(id)
					if err != nil {
						return cli.Exit("", 1)
					}
					in := models.StatusInput{OrderStatus: order.OrderStatus, PaymentStatus: order.PaymentStatus}
					if cmd.IsSet("order") {
						in.OrderStatus = status.OrderStatus(cmd.String("order"))
					}
					if cmd.IsSet("payment") {
						in.PaymentStatus = status.PaymentStatus(cmd.String("payment"))
					}
					return done(v.UpdateStatus(ctx, id, in))
				},
			},
			{
				Name:      "ship",
				Usage:     "Record the tracking code of an order in shipping",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "code", Usage: "carrier tracking code"},
					&cli.StringFlag{Name: "info", Usage: "free-form shipping information"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := arg(cmd, 0, "id")
					if err != nil {
						return err
					}
					v, err := openOrders(ctx, cmd)
					if err != nil {
						return err
					}
					return done(v.UpdateShipping(ctx, id, models.ShippingInput{
						ShippingCode:        cmd.String("code"),
						ShippingInformation: cmd.String("info"),
					}))
				},
			},
			{
				Name:      "payment",
				Usage:     "Show the payment record of an order",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := arg(cmd, 0, "id")
					if err != nil {
						return err
					}
					v, err := openOrders(ctx, cmd)
					if err != nil {
						return err
					}
					info, err := v.PaymentInfo(ctx, id)
					if err != nil {
						return cli.Exit("", 1)
					}
					fmt.Printf("Status: %s\nMétodo: %s\n", info.Status, strings.Join(info.Method, ", "))
					return nil
				},
			},
			{
				Name:      "print",
				Usage:     "Print an order summary",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := arg(cmd, 0, "id")
					if err != nil {
						return err
					}
					d, err := connect(ctx, cmd)
					if err != nil {
						return err
					}
					p, err := views.NewOrders(d).Print(ctx, id)
					if err != nil {
						return cli.Exit("", 1)
					}
					renderPrint(p)
					return nil
				},
			},
		},
	}
}

func optionValues(opts []status.Option) string {
	values := make([]string, 0, len(opts))
	for _, o := range opts {
		values = append(values, o.Value)
	}
	return strings.Join(values, ", ")
}

func clientsCommand() *cli.Command {
	return &cli.Command{
		Name:  "clients",
		Usage: "List clients",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			d, err := connect(ctx, cmd)
			if err != nil {
				return err
			}
			v := views.NewClients(d)
			if err := v.List.Load(ctx); err != nil {
				return err
			}
			renderClients(v.List.Items())
			return nil
		},
	}
}

// watchCommand keeps one screen polling and re-renders it on every change
// until interrupted.
func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Poll a list and redraw it on change",
		ArgsUsage: "<categories|products|orders|clients|banners|sizes|tables|modeling|catalog>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "product", Usage: "product id for product-scoped lists"},
			originFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			resource, err := arg(cmd, 0, "resource")
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			d, err := connect(ctx, cmd)
			if err != nil {
				return err
			}
			tray := notify.NewTray(config.Load().NotifyTTL)
			d.Notifier = notify.Multi{d.Notifier, tray}
			productID := cmd.String("product")
			w := newWatcher(ctx, tray, os.Stdout)

			switch resource {
			case "categories":
				v := views.NewCategories(d)
				w.watch(v.List.OnChange, func() { renderCategories(v.List.Items()) }, v.List.Run)
			case "products":
				v := views.NewProducts(d)
				w.watch(v.List.OnChange, func() { renderProducts(v.List.Items()) }, v.List.Run)
			case "orders":
				v := views.NewOrders(d)
				w.watch(v.List.OnChange, func() { renderOrders(v.List.Items()) }, v.Run)
			case "clients":
				v := views.NewClients(d)
				w.watch(v.List.OnChange, func() { renderClients(v.List.Items()) }, v.List.Run)
			case "banners":
				origin, err := status.ParseBannerOrigin(cmd.String("origin"))
				if err != nil {
					return cli.Exit(err.Error(), 2)
				}
				v := views.NewBanners(d, origin)
				w.watch(v.List.OnChange, func() { renderBanners(v.List.Items()) }, v.List.Run)
			case "sizes":
				v := views.NewSizes(d)
				if err := watchProduct(ctx, v, productID); err != nil {
					return err
				}
				w.watch(v.List.OnChange, func() { renderSizes(v.List.Items()) }, v.Run)
			case "tables":
				v := views.NewTables(d)
				if err := watchProduct(ctx, v, productID); err != nil {
					return err
				}
				w.watch(v.List.OnChange, func() { renderTables(v.List.Items()) }, v.Run)
			case "modeling":
				v := views.NewModeling(d)
				if err := watchProduct(ctx, v, productID); err != nil {
					return err
				}
				w.watch(v.List.OnChange, func() { renderModeling(v.List.Items()) }, v.Run)
			case "catalog":
				v := views.NewCatalog(d)
				if err := watchProduct(ctx, v, productID); err != nil {
					return err
				}
				w.watch(v.List.OnChange, func() { renderCatalog(v.List.Items()) }, v.Run)
			default:
				return cli.Exit("unknown resource: "+resource, 2)
			}
			return nil
		},
	}
}

// watchProduct selects the product of a product-scoped screen. A failed
// first read is reported and left to the polling loop to recover.
func watchProduct(ctx context.Context, s productScope, productID string) error {
	if productID == "" {
		return cli.Exit("missing flag: --product", 2)
	}
	if err := s.SelectProduct(ctx, productID); err != nil {
		log.Printf("[Watch] %v", err)
	}
	return nil
}

// watcher redraws one screen. Polling goroutines trigger redraws
// concurrently, so frames are written under mu.
type watcher struct {
	ctx  context.Context
	tray *notify.Tray
	out  io.Writer
	mu   *sync.Mutex
}

func newWatcher(ctx context.Context, tray *notify.Tray, out io.Writer) watcher {
	return watcher{ctx: ctx, tray: tray, out: out, mu: &sync.Mutex{}}
}

func (w watcher) redraw(render func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprint(w.out, "\033[H\033[2J")
	render()
	for _, n := range w.tray.Active(time.Now()) {
		fmt.Fprintf(w.out, "\n%s: %s", n.Level, n.Message)
	}
	fmt.Fprintln(w.out)
}

func (w watcher) watch(onChange func(func()), render func(), run func(context.Context)) {
	onChange(func() { w.redraw(render) })
	w.redraw(render)
	run(w.ctx)
}
