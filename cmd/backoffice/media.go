package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/example/backoffice/internal/lrm"
	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/status"
	"github.com/example/backoffice/internal/views"
)

func productFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "product", Usage: "product id", Required: true}
}

type productScope interface {
	SelectProduct(ctx context.Context, productID string) error
	Delete(ctx context.Context, id string) lrm.Result
}

// scopedCommand builds the list and delete subcommands shared by the
// product-scoped screens; add is supplied per screen.
func scopedCommand[V productScope](name, usage string, open func(views.Deps) V, render func(V), add *cli.Command) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List entries of a product",
				Flags: []cli.Flag{productFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					d, err := connect(ctx, cmd)
					if err != nil {
						return err
					}
					v := open(d)
					if err := v.SelectProduct(ctx, cmd.String("product")); err != nil {
						return err
					}
					render(v)
					return nil
				},
			},
			add,
			{
				Name:      "delete",
				Usage:     "Delete an entry",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{productFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := arg(cmd, 0, "id")
					if err != nil {
						return err
					}
					d, err := connect(ctx, cmd)
					if err != nil {
						return err
					}
					v := open(d)
					if err := v.SelectProduct(ctx, cmd.String("product")); err != nil {
						return err
					}
					return done(v.Delete(ctx, id))
				},
			},
		},
	}
}

func sizesCommand() *cli.Command {
	return scopedCommand("sizes", "Manage product sizes", views.NewSizes,
		func(v *views.Sizes) { renderSizes(v.List.Items()) },
		&cli.Command{
			Name:      "add",
			Usage:     "Add a size",
			ArgsUsage: "<size>",
			Flags:     []cli.Flag{productFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				d, err := connect(ctx, cmd)
				if err != nil {
					return err
				}
				v := views.NewSizes(d)
				if err := v.SelectProduct(ctx, cmd.String("product")); err != nil {
					return err
				}
				return done(v.Add(ctx, models.SizeInput{Size: cmd.Args().Get(0)}))
			},
		})
}

func tablesCommand() *cli.Command {
	return scopedCommand("tables", "Manage measurement tables", views.NewTables,
		func(v *views.Tables) { renderTables(v.List.Items()) },
		&cli.Command{
			Name:      "add",
			Usage:     "Upload a measurement table image",
			ArgsUsage: "<file>",
			Flags:     []cli.Flag{productFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				path, err := arg(cmd, 0, "file")
				if err != nil {
					return err
				}
				d, err := connect(ctx, cmd)
				if err != nil {
					return err
				}
				v := views.NewTables(d)
				if err := v.SelectProduct(ctx, cmd.String("product")); err != nil {
					return err
				}
				return attach(v.Image, path, func() lrm.Result { return v.Add(ctx) })
			},
		})
}

func modelingCommand() *cli.Command {
	return scopedCommand("modeling", "Manage modeling entries", views.NewModeling,
		func(v *views.Modeling) { renderModeling(v.List.Items()) },
		&cli.Command{
			Name:      "add",
			Usage:     "Upload a modeling image with its title and description",
			ArgsUsage: "<file>",
			Flags: []cli.Flag{
				productFlag(),
				&cli.StringFlag{Name: "title"},
				&cli.StringFlag{Name: "description"},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				path, err := arg(cmd, 0, "file")
				if err != nil {
					return err
				}
				d, err := connect(ctx, cmd)
				if err != nil {
					return err
				}
				v := views.NewModeling(d)
				if err := v.SelectProduct(ctx, cmd.String("product")); err != nil {
					return err
				}
				meta := models.ModelingMeta{Title: cmd.String("title"), Description: cmd.String("description")}
				return attach(v.Image, path, func() lrm.Result { return v.Add(ctx, meta) })
			},
		})
}

func catalogCommand() *cli.Command {
	return scopedCommand("catalog", "Manage product gallery images", views.NewCatalog,
		func(v *views.Catalog) { renderCatalog(v.List.Items()) },
		&cli.Command{
			Name:      "add",
			Usage:     "Upload a gallery image",
			ArgsUsage: "<file>",
			Flags:     []cli.Flag{productFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				path, err := arg(cmd, 0, "file")
				if err != nil {
					return err
				}
				d, err := connect(ctx, cmd)
				if err != nil {
					return err
				}
				v := views.NewCatalog(d)
				if err := v.SelectProduct(ctx, cmd.String("product")); err != nil {
					return err
				}
				return attach(v.Image, path, func() lrm.Result { return v.Add(ctx) })
			},
		})
}

func originFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "origin", Usage: "index, products, product, catalog, cart or other", Value: string(status.OriginIndex)}
}

func bannersCommand() *cli.Command {
	return &cli.Command{
		Name:  "banners",
		Usage: "Manage storefront banners",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List banners of one page",
				Flags: []cli.Flag{originFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					origin, err := status.ParseBannerOrigin(cmd.String("origin"))
					if err != nil {
						return cli.Exit(err.Error(), 2)
					}
					d, err := connect(ctx, cmd)
					if err != nil {
						return err
					}
					v := views.NewBanners(d, origin)
					if err := v.List.Load(ctx); err != nil {
						return err
					}
					renderBanners(v.List.Items())
					return nil
				},
			},
			{
				Name:      "add",
				Usage:     "Upload a banner image",
				ArgsUsage: "<file>",
				Flags:     []cli.Flag{originFlag(), &cli.StringFlag{Name: "redirect", Usage: "link opened on click"}},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path, err := arg(cmd, 0, "file")
					if err != nil {
						return err
					}
					d, err := connect(ctx, cmd)
					if err != nil {
						return err
					}
					origin := status.BannerOrigin(cmd.String("origin"))
					v := views.NewBanners(d, origin)
					meta := models.BannerMeta{Origin: origin, Redirect: cmd.String("redirect")}
					return attach(v.Image, path, func() lrm.Result { return v.Add(ctx, meta) })
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a banner",
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
					return done(views.NewBanners(d, status.OriginIndex).Delete(ctx, id))
				},
			},
		},
	}
}
