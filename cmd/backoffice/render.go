package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/status"
	"github.com/example/backoffice/internal/utils"
)

func table(w io.Writer, header string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	_ = tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "sim"
	}
	return "não"
}

func renderCategories(items []models.Category) {
	rows := make([][]string, 0, len(items))
	for _, c := range items {
		rows = append(rows, []string{c.ID, c.Name, yesNo(c.Active), c.Thumbnail})
	}
	table(os.Stdout, "ID\tNOME\tATIVA\tIMAGEM", rows)
}

func renderProducts(items []models.Product) {
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		category := p.CategoryID
		if p.Category != nil {
			category = p.Category.Name
		}
		rows = append(rows, []string{p.ID, p.Name, category, utils.FormatMoney(p.Price), yesNo(p.Active)})
	}
	table(os.Stdout, "ID\tNOME\tCATEGORIA\tPREÇO\tATIVO", rows)
}

func renderSizes(items []models.Size) {
	rows := make([][]string, 0, len(items))
	for _, s := range items {
		rows = append(rows, []string{s.ID, s.Size})
	}
	table(os.Stdout, "ID\tTAMANHO", rows)
}

func renderTables(items []models.TableImage) {
	rows := make([][]string, 0, len(items))
	for _, t := range items {
		rows = append(rows, []string{t.ID, t.Image})
	}
	table(os.Stdout, "ID\tIMAGEM", rows)
}

func renderModeling(items []models.ModelingEntry) {
	rows := make([][]string, 0, len(items))
	for _, m := range items {
		rows = append(rows, []string{m.ID, m.Title, m.Description, m.Image})
	}
	table(os.Stdout, "ID\tTÍTULO\tDESCRIÇÃO\tIMAGEM", rows)
}

func renderCatalog(items []models.CatalogImage) {
	rows := make([][]string, 0, len(items))
	for _, c := range items {
		rows = append(rows, []string{c.ID, c.Image})
	}
	table(os.Stdout, "ID\tIMAGEM", rows)
}

func renderBanners(items []models.Banner) {
	rows := make([][]string, 0, len(items))
	for _, b := range items {
		rows = append(rows, []string{b.ID, b.Origin.Label().Text, b.Redirect, b.Banner})
	}
	table(os.Stdout, "ID\tPÁGINA\tREDIRECIONAR\tIMAGEM", rows)
}

func renderOrders(items []models.Order) {
	rows := make([][]string, 0, len(items))
	for _, o := range items {
		client := o.ClientID
		if o.Client != nil {
			client = o.Client.Name
		}
		rows = append(rows, []string{
			o.ID,
			client,
			statusText(o.OrderStatus.Label()),
			statusText(o.PaymentStatus.Label()),
			utils.FormatMoney(o.Total),
			utils.FormatDate(o.CreatedAt),
		})
	}
	table(os.Stdout, "ID\tCLIENTE\tSTATUS\tPAGAMENTO\tTOTAL\tDATA", rows)
}

func renderClients(items []models.Client) {
	rows := make([][]string, 0, len(items))
	for _, c := range items {
		rows = append(rows, []string{c.ID, c.Name, c.Phone, c.Email, c.City + "/" + c.State})
	}
	table(os.Stdout, "ID\tNOME\tTELEFONE\tE-MAIL\tCIDADE", rows)
}

func statusText(l status.Label) string {
	return "[" + l.Color + "] " + l.Text
}

func renderPrint(p models.OrderPrint) {
	fmt.Printf("Pedido: %s\nCliente: %s\nEndereço: %s\nData: %s\n\n", p.Order, p.Client, p.Address, p.Date)
	rows := make([][]string, 0, len(p.Items))
	for _, it := range p.Items {
		name, size := it.ProductID, it.SizeID
		if it.Product != nil {
			name = it.Product.Name
		}
		if it.Size != nil {
			size = it.Size.Size
		}
		rows = append(rows, []string{name, size, fmt.Sprint(it.Quantity), utils.FormatMoney(it.LineTotal())})
	}
	table(os.Stdout, "PRODUTO\tTAMANHO\tQTD\tTOTAL", rows)
	fmt.Printf("\nTotal: %s\n", p.Total)
}
