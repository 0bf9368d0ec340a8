package scoring

// Statement fields with the names used by Yahoo-style and EODHD-style vendors.
// Earlier names win.
var (
	FieldTotalAssets = Field{
		Label: "Total Assets",
		Names: []string{"Total Assets", "TotalAssets", "totalAssets"},
	}
	FieldCurrentAssets = Field{
		Label: "Current Assets",
		Names: []string{"Current Assets", "CurrentAssets", "TotalCurrentAssets", "totalCurrentAssets"},
	}
	FieldNonCurrentAssets = Field{
		Label: "Non Current Assets",
		Names: []string{"Non Current Assets", "TotalNonCurrentAssets", "nonCurrentAssetsTotal"},
	}
	FieldCurrentLiabilities = Field{
		Label: "Current Liabilities",
		Names: []string{"Current Liabilities", "CurrentLiabilities", "TotalCurrentLiabilities", "totalCurrentLiabilities"},
	}
	FieldTotalLiabilities = Field{
		Label: "Total Liabilities",
		Names: []string{"Total Liabilities Net Minority Interest", "TotalLiabilities", "Total Liabilities", "totalLiab"},
	}
	FieldRetainedEarnings = Field{
		Label: "Retained Earnings",
		Names: []string{"Retained Earnings", "RetainedEarnings", "retainedEarnings"},
	}
	FieldTotalEquity = Field{
		Label: "Total Equity",
		Names: []string{"Total Equity", "TotalEquity", "Stockholders Equity", "totalStockholderEquity"},
	}
	FieldCapitalStock = Field{
		Label: "Capital Stock",
		Names: []string{"Capital Stock", "CommonStock", "capitalStock", "commonStock"},
	}
	FieldLongTermDebt = Field{
		Label: "Long Term Debt",
		Names: []string{"Long Term Debt", "LongTermDebt", "longTermDebt"},
	}
	FieldTotalDebt = Field{
		Label: "Total Debt",
		Names: []string{"Total Debt", "TotalDebt", "shortLongTermDebtTotal"},
	}

	FieldEBIT = Field{
		Label: "EBIT",
		Names: []string{"EBIT", "OperatingIncome", "ebit"},
	}
	FieldEBITDA = Field{
		Label: "EBITDA",
		Names: []string{"EBITDA", "ebitda"},
	}
	FieldDepreciation = Field{
		Label: "Depreciation",
		Names: []string{"Depreciation", "DepreciationAndAmortization", "depreciationAndAmortization", "reconciledDepreciation"},
	}
	FieldRevenue = Field{
		Label: "Sales/Revenue",
		Names: []string{"Total Revenue", "TotalRevenue", "Revenue", "totalRevenue"},
	}
	FieldNetIncome = Field{
		Label: "Net Income",
		Names: []string{"Net Income", "NetIncome", "netIncome"},
	}
	FieldOperatingIncome = Field{
		Label: "Operating Income",
		Names: []string{"Operating Income", "OperatingIncome", "operatingIncome"},
	}
	FieldInterestExpense = Field{
		Label: "Interest Expense",
		Names: []string{"Interest Expense", "InterestExpense", "interestExpense"},
	}
	FieldTaxProvision = Field{
		Label: "Tax Provision",
		Names: []string{"Tax Provision", "TaxProvision", "incomeTaxExpense"},
	}
)
