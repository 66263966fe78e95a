// Package pdf builds the downloadable invoice document.
package pdf

import (
	"fmt"
	"strconv"

	"shopbill/internal/models"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// InvoicePDF renders an A4 invoice from the header + item snapshots. All
// figures come from the stored rows; the catalog is never re-joined.
func InvoicePDF(inv *models.Invoice) ([]byte, error) {
	cfg := config.NewBuilder().WithPageSize(pagesize.A4).Build()
	m := maroto.New(cfg)

	m.AddRow(12, text.NewCol(12, "Invoice "+inv.InvoiceNo, props.Text{Size: 16, Style: fontstyle.Bold}))
	m.AddRow(6, text.NewCol(12, "Date: "+inv.Date, props.Text{Size: 9}))
	m.AddRow(6, text.NewCol(12, "Customer: "+inv.CustomerName, props.Text{Size: 9}))

	m.AddRow(10,
		text.NewCol(6, "Item", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(2, "Qty", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Price", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)
	for _, it := range inv.Items {
		m.AddRow(6,
			text.NewCol(6, it.Item, props.Text{Size: 9}),
			text.NewCol(2, strconv.Itoa(it.Qty), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, fmt.Sprintf("%.2f", it.Price), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, fmt.Sprintf("%.2f", it.Amount), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(12, text.NewCol(12, fmt.Sprintf("Total: %.2f", inv.Total),
		props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}))

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
