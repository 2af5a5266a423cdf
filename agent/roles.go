package agent

// Role describes one analysis specialty. Name and Description frame the
// model's persona; Focus is the role-specific instruction spliced into the
// shared prompt template.
type Role struct {
	Key         string
	Name        string
	Description string
	Focus       string
}

// The six built-in analysis roles. Keys are stable identifiers used to
// address tasks and results.
var (
	SupplierIntelligence = Role{
		Key:         "supplier",
		Name:        "Supplier Intelligence Agent",
		Description: "Evaluates supplier performance and rankings.",
		Focus:       "analyze supplier performance. Provide a ranking of top suppliers and detailed performance analysis (Delivery, Quality).",
	}

	SpendAnalysis = Role{
		Key:         "spend",
		Name:        "Spend Analysis Agent",
		Description: "Analyzes spend patterns and identifies cost-saving opportunities.",
		Focus:       "analyze the spend data. Identify monthly/yearly trends, category-wise spend, and cost-saving opportunities.",
	}

	RiskMonitoring = Role{
		Key:         "risk",
		Name:        "Risk Monitoring Agent",
		Description: "Identifies supplier risks and supply chain disruptions.",
		Focus:       "identify high-risk suppliers and potential supply chain disruptions.",
	}

	ContractIntelligence = Role{
		Key:         "contract",
		Name:        "Contract Intelligence Agent",
		Description: "Reviews contracts for expiry, clauses, and compliance.",
		Focus:       "review the contract details. Focus on Expiry dates, Key clauses, and Compliance status.",
	}

	POAutomation = Role{
		Key:         "po",
		Name:        "PO Automation Agent",
		Description: "Automates PO creation and tracks delivery status.",
		Focus:       "analyze the Purchase Order data. Identify potential issues with Delivery Tracking and Price Validation.",
	}

	CompliancePolicy = Role{
		Key:         "compliance",
		Name:        "Compliance & Policy Agent",
		Description: "Ensures adherence to procurement policies and regulations.",
		Focus:       "check for Policy Violations, Budget Deviations, and Missing Documentation.",
	}
)

// Roles lists every built-in role in presentation order.
func Roles() []Role {
	return []Role{
		SupplierIntelligence,
		SpendAnalysis,
		RiskMonitoring,
		ContractIntelligence,
		POAutomation,
		CompliancePolicy,
	}
}

// RoleByKey looks up a built-in role by its key.
func RoleByKey(key string) (Role, bool) {
	for _, r := range Roles() {
		if r.Key == key {
			return r, true
		}
	}
	return Role{}, false
}
