package catalog

func codes(prefix string) []string {
	out := make([]string, 5)
	for i := range out {
		out[i] = prefix + string(rune('1'+i))
	}
	return out
}

// DefaultProducts is the catalog the service starts with when no file is given.
func DefaultProducts() []Product {
	return []Product{
		{ID: 1, Name: "TRE TreMoon Shop", Section: "ABC", Subsection: "TRE", Coverage: "AKH",
			Extension: Extension{Code1: "T001", Code2: "TR01", Code3: "TRE1"}},
		{ID: 2, Name: "BIL Billon SASKC", Section: "DEF", Subsection: "BIL", Coverage: "MNBV",
			Extension: Extension{Code1: "B001", Code2: "BL01", Code3: "BIL1"}},
		{ID: 3, Name: "GAM GameZone Pro", Section: "GHI", Subsection: "GAM", Coverage: "LKJH",
			Extension: Extension{Code1: "G001", Code2: "GM01", Code3: "GAM1"}},
		{ID: 4, Name: "MED MediCare Plus", Section: "JKL", Subsection: "MED", Coverage: "PLMN",
			Extension: Extension{Code1: "M001", Code2: "MD01", Code3: "MED1"}},
		{ID: 5, Name: "EDU EduTech Solutions", Section: "MNO", Subsection: "EDU", Coverage: "XZAQ",
			Extension: Extension{Code1: "E001", Code2: "ED01", Code3: "EDU1"}},
	}
}

func DefaultRules() Rules {
	return Rules{
		"TRE TreMoon Shop": {
			Sections:    []string{"ABC", "XYZ", "PQR", "STU", "VWX"},
			Subsections: []string{"TRE", "MOO", "SHO"},
			Coverages:   []string{"AKH", "SVT", "SAEL", "QWER", "ZXCV"},
			Extensions:  ExtensionRule{Code1: codes("T00"), Code2: codes("TR0"), Code3: codes("TRE")},
		},
		"BIL Billon SASKC": {
			Sections:    []string{"DEF", "RST", "UVW", "YZA", "BCD"},
			Subsections: []string{"BIL", "LON", "SAS"},
			Coverages:   []string{"MNBV", "HJKL", "TYUI", "DFGH", "POIU"},
			Extensions:  ExtensionRule{Code1: codes("B00"), Code2: codes("BL0"), Code3: codes("BIL")},
		},
		"GAM GameZone Pro": {
			Sections:    []string{"GHI", "EFG", "HIJ", "KLM", "NOP"},
			Subsections: []string{"GAM", "ZON", "PRO"},
			Coverages:   []string{"LKJH", "GFDS", "WERT", "VCXZ", "NBMQ"},
			Extensions:  ExtensionRule{Code1: codes("G00"), Code2: codes("GM0"), Code3: codes("GAM")},
		},
		"MED MediCare Plus": {
			Sections:    []string{"JKL", "QRS", "TUV", "WXY", "ZAB"},
			Subsections: []string{"MED", "CAR", "PLU"},
			Coverages:   []string{"PLMN", "OKIJ", "UHYG", "RFED", "WSAQ"},
			Extensions:  ExtensionRule{Code1: codes("M00"), Code2: codes("MD0"), Code3: codes("MED")},
		},
		"EDU EduTech Solutions": {
			Sections:    []string{"MNO", "CDE", "FGH", "IJK", "LMN"},
			Subsections: []string{"EDU", "TEC", "SOL"},
			Coverages:   []string{"XZAQ", "CVER", "BNMT", "YUIO", "HGJK"},
			Extensions:  ExtensionRule{Code1: codes("E00"), Code2: codes("ED0"), Code3: codes("EDU")},
		},
	}
}
