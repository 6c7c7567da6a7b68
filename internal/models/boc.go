package models

// budgetObjectCodes maps a budget object classification code to its
// human-readable description shown on approval views.
var budgetObjectCodes = map[string]string{
	"2320": "Rental of Equipment",
	"2580": "Maintenance Contracts",
	"3101": "Office Supplies",
	"3112": "Computer Supplies",
	"3121": "Medical Supplies",
	"3130": "Janitorial Supplies",
	"3190": "Other Operating Supplies",
	"3610": "Books and Publications",
	"4313": "Computer Equipment",
	"4316": "Furniture and Fixtures",
	"4390": "Other Equipment",
}

// DescribeBudgetObjectCode translates a BOC code to its description; unknown
// codes are returned unchanged.
func DescribeBudgetObjectCode(code string) string {
	if name, ok := budgetObjectCodes[code]; ok {
		return name
	}
	return code
}
