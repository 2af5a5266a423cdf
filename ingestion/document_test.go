package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/procurelens/procurelens/core"
)

func TestBuildRowDocument(t *testing.T) {
	t.Run("renders all fields in fixed order", func(t *testing.T) {
		row := map[string]string{
			ColSupplierName:    "Acme Industrial",
			ColSupplierID:      "SUP-001",
			ColItemName:        "Steel Bolts",
			ColItemCategory:    "Fasteners",
			ColPOID:            "PO-1009",
			ColPODate:          "2026-03-14",
			ColTotalAmount:     "1250.00",
			ColUnit:            "USD",
			ColUnitPrice:       "0.25",
			ColOnTimeDelivery:  "97",
			ColQualityScore:    "4.6",
			ColRiskLevel:       "Medium",
			ColRiskDescription: "Single-source dependency",
			ColContractID:      "CT-88",
			ColContractEndDate: "2027-01-31",
			ColComplianceStat:  "Compliant",
		}

		doc := BuildRowDocument(row, "suppliers.csv", 3)

		expected := "Supplier: Acme Industrial (ID: SUP-001)\n" +
			"Item: Steel Bolts (Category: Fasteners)\n" +
			"PO: PO-1009 | Date: 2026-03-14\n" +
			"Cost: 1250.00 USD | Price: 0.25\n" +
			"Performance: Delivery 97%, Quality 4.6\n" +
			"Risk: Medium - Single-source dependency\n" +
			"Contract: CT-88 (Expires: 2027-01-31)\n" +
			"Compliance: Compliant"
		assert.Equal(t, expected, doc.Text)
	})

	t.Run("defaults absent fields", func(t *testing.T) {
		doc := BuildRowDocument(map[string]string{}, "empty.csv", 0)

		assert.Contains(t, doc.Text, "Supplier: N/A (ID: N/A)")
		assert.Contains(t, doc.Text, "Cost: 0  | Price: 0")
		assert.Contains(t, doc.Text, "Risk: Low - None")
		assert.Contains(t, doc.Text, "Compliance: Unknown")
	})

	t.Run("treats empty strings as absent", func(t *testing.T) {
		doc := BuildRowDocument(map[string]string{
			ColSupplierName: "",
			ColRiskLevel:    "",
		}, "blank.csv", 0)

		assert.Contains(t, doc.Text, "Supplier: N/A")
		assert.Contains(t, doc.Text, "Risk: Low")
	})

	t.Run("populates metadata", func(t *testing.T) {
		doc := BuildRowDocument(map[string]string{
			ColSupplierID:   "SUP-002",
			ColSupplierName: "Globex",
			ColItemCategory: "Logistics",
			ColRiskLevel:    "High",
		}, "risk.csv", 7)

		assert.Equal(t, "SUP-002", doc.Metadata[core.MetaSupplierID])
		assert.Equal(t, "Globex", doc.Metadata[core.MetaSupplierName])
		assert.Equal(t, "Logistics", doc.Metadata[core.MetaItemCategory])
		assert.Equal(t, "High", doc.Metadata[core.MetaRiskLevel])
		assert.Equal(t, "risk.csv", doc.Metadata[core.MetaSource])
		assert.Equal(t, "7", doc.Metadata[core.MetaRowIndex])
	})

	t.Run("absent metadata fields become empty strings", func(t *testing.T) {
		doc := BuildRowDocument(map[string]string{}, "empty.csv", 1)

		assert.Equal(t, "", doc.Metadata[core.MetaSupplierID])
		assert.Equal(t, "", doc.Metadata[core.MetaRiskLevel])
	})

	t.Run("id is deterministic per source and row", func(t *testing.T) {
		row := map[string]string{ColSupplierName: "Acme"}

		a := BuildRowDocument(row, "a.csv", 0)
		b := BuildRowDocument(row, "a.csv", 0)
		assert.Equal(t, a.Id, b.Id)

		otherRow := BuildRowDocument(row, "a.csv", 1)
		assert.NotEqual(t, a.Id, otherRow.Id)

		otherSource := BuildRowDocument(row, "b.csv", 0)
		assert.NotEqual(t, a.Id, otherSource.Id)
	})

	t.Run("renders exactly eight lines", func(t *testing.T) {
		doc := BuildRowDocument(map[string]string{}, "empty.csv", 0)
		assert.Len(t, strings.Split(doc.Text, "\n"), 8)
	})
}
