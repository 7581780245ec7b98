package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/example/backoffice/internal/lrm"
	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/upload"
	"github.com/example/backoffice/internal/utils"
	"github.com/example/backoffice/internal/views"
)

// attach selects path on u, prints where its preview can be opened and runs
// send when the file is acceptable.
func attach(u *upload.Uploader, path string, send func() lrm.Result) error {
	ok, err := u.SelectPath(path)
	if err != nil {
		return err
	}
	defer u.Clear()
	if !ok {
		return cli.Exit("", 1)
	}
	if preview, err := u.Preview(); err == nil {
		fmt.Fprintf(os.Stderr, "Pré-visualização: %s (%.2f KB)\n", preview, selectedKB(u))
	}
	return done(send())
}

func selectedKB(u *upload.Uploader) float64 {
	f, _ := u.Selection()
	return f.SizeKB()
}

func categoriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "Manage categories",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List categories",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					d, err := connect(ctx, cmd)
					if err != nil {
						return err
					}
					v := views.NewCategories(d)
					if err := v.List.Load(ctx); err != nil {
						return err
					}
					renderCategories(v.List.Items())
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "Create a category, optionally with a thumbnail",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "thumbnail", Usage: "image file to attach after creation"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					d, err := connect(ctx, cmd)
					if err != nil {
						return err
					}
					v := views.NewCategories(d)
					res := v.Create(ctx, models.CategoryInput{Name: cmd.String("name"), Description: cmd.String("description")})
					if !res.OK || cmd.String("thumbnail") == "" {
						return done(res)
					}
					fmt.Println(res.ID)
					return attach(v.Thumb, cmd.String("thumbnail"), func() lrm.Result {
						return v.UploadThumbnail(ctx, res.ID)
					})
				},
			},
			{
				Name:      "update",
				Usage:     "Rename or describe a category",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "description"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := arg(cmd, 0, "id")
					if err != nil {
						return err
					}
					d, err := connect(ctx, cmd)
					if err != nil {
						return err
					}
					v := views.NewCategories(d)
					if err := v.List.Load(ctx); err != nil {
						return err
					}
					in, err := v.Edit(id)
					if err != nil {
						return cli.Exit("", 1)
					}
					if cmd.IsSet("name") {
						in.Name = cmd.String("name")
					}
					if cmd.IsSet("description") {
						in.Description = cmd.String("description")
					}
					return done(v.Update(ctx, in))
				},
			},
			{
				Name:      "active",
				Usage:     "Activate a category, or deactivate it with --off",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "off"}},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := arg(cmd, 0, "id")
					if err != nil {
						return err
					}
					d, err := connect(ctx, cmd)
					if err != nil {
						return err
					}
					return done(views.NewCategories(d).SetActive(ctx, id, !cmd.Bool("off")))
				},
			},
			{
				Name:      "thumbnail",
				Usage:     "Replace a category thumbnail",
				ArgsUsage: "<id> <file>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := arg(cmd, 0, "id")
					if err != nil {
						return err
					}
					path, err := arg(cmd, 1, "file")
					if err != nil {
						return err
					}
					d, err := connect(ctx, cmd)
					if err != nil {
						return err
					}
					v := views.NewCategories(d)
					return attach(v.Thumb, path, func() lrm.Result { return v.ChangeThumbnail(ctx, id) })
				},
			},
		},
	}
}

func productFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name"},
		&cli.StringFlag{Name: "category", Usage: "category id"},
		&cli.StringFlag{Name: "price", Usage: "e.g. 89.90 or 89,90"},
		&cli.StringFlag{Name: "short", Usage: "short description"},
		&cli.StringFlag{Name: "description", Usage: "HTML description"},
		&cli.StringFlag{Name: "video", Usage: "video URL"},
	}
}

// applyProductFlags overrides the fields of in whose flags were given.
func applyProductFlags(cmd *cli.Command, in *models.ProductInput) error {
	if cmd.IsSet("name") {
		in.Name = cmd.String("name")
	}
	if cmd.IsSet("category") {
		in.CategoryID = cmd.String("category")
	}
	if cmd.IsSet("price") {
		price, err := utils.ParseMoney(cmd.String("price"))
		if err != nil {
			return cli.Exit("invalid price: "+cmd.String("price"), 2)
		}
		in.Price = price
	}
	if cmd.IsSet("short") {
		in.ShortDescription = cmd.String("short")
	}
	if cmd.IsSet("description") {
		in.Description = cmd.String("description")
	}
	if cmd.IsSet("video") {
		in.Video = cmd.String("video")
	}
	return nil
}

func productsCommand() *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "Manage products",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List products",
				Flags: []cli.Flag{&cli.StringFlag{Name: "category", Usage: "only this category id"}},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					d, err := connect(ctx, cmd)
					if err != nil {
						return err
					}
					v := views.NewProducts(d)
					if err := v.FilterByCategory(ctx, cmd.String("category")); err != nil {
						return err
					}
					renderProducts(v.List.Items())
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "Create a product, optionally with a thumbnail",
				Flags: append(productFlags(), &cli.StringFlag{Name: "thumbnail"}),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					var in models.ProductInput
					if err := applyProductFlags(cmd, &in); err != nil {
						return err
					}
					d, err := connect(ctx, cmd)
					if err != nil {
						return err
					}
					v := views.NewProducts(d)
					res := v.Create(ctx, in)
					if !res.OK || cmd.String("thumbnail") == "" {
						return done(res)
					}
					fmt.Println(res.ID)
					return attach(v.Thumb, cmd.String("thumbnail"), func() lrm.Result {
						return v.UploadThumbnail(ctx, res.ID)
					})
				},
			},
			{
				Name:      "update",
				Usage:     "Change product fields",
				ArgsUsage: "<id>",
				Flags:     productFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := arg(cmd, 0, "id")
					if err != nil {
						return err
					}
					d, err := connect(ctx, cmd)
					if err != nil {
						return err
					}
					v := views.NewProducts(d)
					if err := v.List.Load(ctx); err != nil {
						return err
					}
					in, err := v.Edit(id)
					if err != nil {
						return cli.Exit("", 1)
					}
					if err := applyProductFlags(cmd, &in); err != nil {
						return err
					}
					return done(v.Update(ctx, in))
				},
			},
			{
				Name:      "active",
				Usage:     "Activate a product, or deactivate it with --off",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "off"}},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := arg(cmd, 0, "id")
					if err != nil {
						return err
					}
					d, err := connect(ctx, cmd)
					if err != nil {
						return err
					}
					return done(views.NewProducts(d).SetActive(ctx, id, !cmd.Bool("off")))
				},
			},
			{
				Name:      "thumbnail",
				Usage:     "Replace a product thumbnail",
				ArgsUsage: "<id> <file>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := arg(cmd, 0, "id")
					if err != nil {
						return err
					}
					path, err := arg(cmd, 1, "file")
					if err != nil {
						return err
					}
					d, err := connect(ctx, cmd)
					if err != nil {
						return err
					}
					v := views.NewProducts(d)
					return attach(v.Thumb, path, func() lrm.Result { return v.UploadThumbnail(ctx, id) })
				},
			},
		},
	}
}
