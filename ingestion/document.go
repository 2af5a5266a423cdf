package ingestion

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/procurelens/procurelens/core"
)

// Recognized source columns. Any subset may be present in an uploaded file;
// everything else is ignored.
const (
	ColSupplierName    = "SupplierName"
	ColSupplierID      = "SupplierID"
	ColItemName        = "ItemName"
	ColItemCategory    = "ItemCategory"
	ColPOID            = "POID"
	ColPODate          = "PODate"
	ColTotalAmount     = "TotalAmount"
	ColUnit            = "Unit"
	ColUnitPrice       = "UnitPrice"
	ColOnTimeDelivery  = "OnTimeDelivery%"
	ColQualityScore    = "QualityScore"
	ColRiskLevel       = "SupplierRiskLevel"
	ColRiskDescription = "RiskDescription"
	ColContractID      = "ContractID"
	ColContractEndDate = "ContractEndDate"
	ColComplianceStat  = "ComplianceStatus"
)

// BuildRowDocument converts one tabular record into a retrievable document.
//
// The text rendering order and field labels are fixed: the text, not the
// metadata, is what gets embedded and matched, so re-ingesting the same
// source must produce byte-identical renderings. Absent fields render a
// documented default token instead of being omitted, keeping every document
// the same shape for embedding-quality consistency.
//
// The function is pure: no side effects, no error conditions. Missing
// fields are defaulted, never rejected.
func BuildRowDocument(row map[string]string, source string, rowIndex int) core.RowDocument {
	var b strings.Builder

	fmt.Fprintf(&b, "Supplier: %s (ID: %s)\n",
		fieldOr(row, ColSupplierName, "N/A"), fieldOr(row, ColSupplierID, "N/A"))
	fmt.Fprintf(&b, "Item: %s (Category: %s)\n",
		fieldOr(row, ColItemName, "N/A"), fieldOr(row, ColItemCategory, "N/A"))
	fmt.Fprintf(&b, "PO: %s | Date: %s\n",
		fieldOr(row, ColPOID, "N/A"), fieldOr(row, ColPODate, "N/A"))
	fmt.Fprintf(&b, "Cost: %s %s | Price: %s\n",
		fieldOr(row, ColTotalAmount, "0"), fieldOr(row, ColUnit, ""), fieldOr(row, ColUnitPrice, "0"))
	fmt.Fprintf(&b, "Performance: Delivery %s%%, Quality %s\n",
		fieldOr(row, ColOnTimeDelivery, "N/A"), fieldOr(row, ColQualityScore, "N/A"))
	fmt.Fprintf(&b, "Risk: %s - %s\n",
		fieldOr(row, ColRiskLevel, "Low"), fieldOr(row, ColRiskDescription, "None"))
	fmt.Fprintf(&b, "Contract: %s (Expires: %s)\n",
		fieldOr(row, ColContractID, "N/A"), fieldOr(row, ColContractEndDate, "N/A"))
	fmt.Fprintf(&b, "Compliance: %s",
		fieldOr(row, ColComplianceStat, "Unknown"))

	text := b.String()

	// Metadata values are always strings, absent fields become "" so
	// downstream equality filters never fail on a type mismatch.
	metadata := map[string]string{
		core.MetaSupplierID:   row[ColSupplierID],
		core.MetaSupplierName: row[ColSupplierName],
		core.MetaItemCategory: row[ColItemCategory],
		core.MetaRiskLevel:    row[ColRiskLevel],
		core.MetaSource:       source,
		core.MetaRowIndex:     strconv.Itoa(rowIndex),
	}

	return core.RowDocument{
		Id:       core.IDFromContent(fmt.Sprintf("%s:%d:%s", source, rowIndex, text)),
		Text:     text,
		Metadata: metadata,
	}
}

// fieldOr returns the row value for key, or def when the column is absent
// or empty. CSV has no null; an empty cell counts as absent.
func fieldOr(row map[string]string, key, def string) string {
	if v, ok := row[key]; ok && v != "" {
		return v
	}
	return def
}
