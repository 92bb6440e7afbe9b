package country

import "strings"

// Region labels used across the pipeline.
const (
	RegionAfrica       = "Africa"
	RegionAsia         = "Asia"
	RegionEurope       = "Europe"
	RegionNorthAmerica = "North America"
	RegionSouthAmerica = "South America"
	RegionOceania      = "Oceania"
)

// regionByAlpha3 maps ISO 3166-1 alpha-3 codes to a continent-level region.
// The map is deliberately partial: codes for dependent territories without a
// region assignment simply yield no region.
var regionByAlpha3 = map[string]string{
	// Africa
	"DZA": RegionAfrica, "AGO": RegionAfrica, "BEN": RegionAfrica,
	"BWA": RegionAfrica, "BFA": RegionAfrica, "BDI": RegionAfrica,
	"CPV": RegionAfrica, "CMR": RegionAfrica, "CAF": RegionAfrica,
	"TCD": RegionAfrica, "COM": RegionAfrica, "COG": RegionAfrica,
	"COD": RegionAfrica, "CIV": RegionAfrica, "DJI": RegionAfrica,
	"EGY": RegionAfrica, "GNQ": RegionAfrica, "ERI": RegionAfrica,
	"SWZ": RegionAfrica, "ETH": RegionAfrica, "GAB": RegionAfrica,
	"GMB": RegionAfrica, "GHA": RegionAfrica, "GIN": RegionAfrica,
	"GNB": RegionAfrica, "KEN": RegionAfrica, "LSO": RegionAfrica,
	"LBR": RegionAfrica, "LBY": RegionAfrica, "MDG": RegionAfrica,
	"MWI": RegionAfrica, "MLI": RegionAfrica, "MRT": RegionAfrica,
	"MUS": RegionAfrica, "MAR": RegionAfrica, "MOZ": RegionAfrica,
	"NAM": RegionAfrica, "NER": RegionAfrica, "NGA": RegionAfrica,
	"RWA": RegionAfrica, "STP": RegionAfrica, "SEN": RegionAfrica,
	"SYC": RegionAfrica, "SLE": RegionAfrica, "SOM": RegionAfrica,
	"ZAF": RegionAfrica, "SSD": RegionAfrica, "SDN": RegionAfrica,
	"TZA": RegionAfrica, "TGO": RegionAfrica, "TUN": RegionAfrica,
	"UGA": RegionAfrica, "ZMB": RegionAfrica, "ZWE": RegionAfrica,

	// Asia
	"AFG": RegionAsia, "ARM": RegionAsia, "AZE": RegionAsia,
	"BHR": RegionAsia, "BGD": RegionAsia, "BTN": RegionAsia,
	"BRN": RegionAsia, "KHM": RegionAsia, "CHN": RegionAsia,
	"CYP": RegionAsia, "GEO": RegionAsia, "IND": RegionAsia,
	"IDN": RegionAsia, "IRN": RegionAsia, "IRQ": RegionAsia,
	"ISR": RegionAsia, "JPN": RegionAsia, "JOR": RegionAsia,
	"KAZ": RegionAsia, "KWT": RegionAsia, "KGZ": RegionAsia,
	"LAO": RegionAsia, "LBN": RegionAsia, "MYS": RegionAsia,
	"MDV": RegionAsia, "MNG": RegionAsia, "MMR": RegionAsia,
	"NPL": RegionAsia, "PRK": RegionAsia, "OMN": RegionAsia,
	"PAK": RegionAsia, "PSE": RegionAsia, "PHL": RegionAsia,
	"QAT": RegionAsia, "SAU": RegionAsia, "SGP": RegionAsia,
	"KOR": RegionAsia, "LKA": RegionAsia, "SYR": RegionAsia,
	"TWN": RegionAsia, "TJK": RegionAsia, "THA": RegionAsia,
	"TLS": RegionAsia, "TUR": RegionAsia, "TKM": RegionAsia,
	"ARE": RegionAsia, "UZB": RegionAsia, "VNM": RegionAsia,
	"YEM": RegionAsia,

	// Europe
	"ALB": RegionEurope, "AND": RegionEurope, "AUT": RegionEurope,
	"BLR": RegionEurope, "BEL": RegionEurope, "BIH": RegionEurope,
	"BGR": RegionEurope, "HRV": RegionEurope, "CZE": RegionEurope,
	"DNK": RegionEurope, "EST": RegionEurope, "FIN": RegionEurope,
	"FRA": RegionEurope, "DEU": RegionEurope, "GRC": RegionEurope,
	"HUN": RegionEurope, "ISL": RegionEurope, "IRL": RegionEurope,
	"ITA": RegionEurope, "XKX": RegionEurope, "LVA": RegionEurope,
	"LIE": RegionEurope, "LTU": RegionEurope, "LUX": RegionEurope,
	"MLT": RegionEurope, "MDA": RegionEurope, "MCO": RegionEurope,
	"MNE": RegionEurope, "NLD": RegionEurope, "MKD": RegionEurope,
	"NOR": RegionEurope, "POL": RegionEurope, "PRT": RegionEurope,
	"ROU": RegionEurope, "RUS": RegionEurope, "SMR": RegionEurope,
	"SRB": RegionEurope, "SVK": RegionEurope, "SVN": RegionEurope,
	"ESP": RegionEurope, "SWE": RegionEurope, "CHE": RegionEurope,
	"UKR": RegionEurope, "GBR": RegionEurope, "VAT": RegionEurope,

	// North America
	"ATG": RegionNorthAmerica, "BHS": RegionNorthAmerica, "BRB": RegionNorthAmerica,
	"BLZ": RegionNorthAmerica, "CAN": RegionNorthAmerica, "CRI": RegionNorthAmerica,
	"CUB": RegionNorthAmerica, "DMA": RegionNorthAmerica, "DOM": RegionNorthAmerica,
	"SLV": RegionNorthAmerica, "GRD": RegionNorthAmerica, "GTM": RegionNorthAmerica,
	"HTI": RegionNorthAmerica, "HND": RegionNorthAmerica, "JAM": RegionNorthAmerica,
	"MEX": RegionNorthAmerica, "NIC": RegionNorthAmerica, "PAN": RegionNorthAmerica,
	"KNA": RegionNorthAmerica, "LCA": RegionNorthAmerica, "VCT": RegionNorthAmerica,
	"TTO": RegionNorthAmerica, "USA": RegionNorthAmerica,

	// South America
	"ARG": RegionSouthAmerica, "BOL": RegionSouthAmerica, "BRA": RegionSouthAmerica,
	"CHL": RegionSouthAmerica, "COL": RegionSouthAmerica, "ECU": RegionSouthAmerica,
	"GUY": RegionSouthAmerica, "PRY": RegionSouthAmerica, "PER": RegionSouthAmerica,
	"SUR": RegionSouthAmerica, "URY": RegionSouthAmerica, "VEN": RegionSouthAmerica,

	// Oceania
	"AUS": RegionOceania, "FJI": RegionOceania, "KIR": RegionOceania,
	"MHL": RegionOceania, "FSM": RegionOceania, "NRU": RegionOceania,
	"NZL": RegionOceania, "PLW": RegionOceania, "PNG": RegionOceania,
	"WSM": RegionOceania, "SLB": RegionOceania, "TON": RegionOceania,
	"TUV": RegionOceania, "VUT": RegionOceania,
}

// RegionForISO returns the region for an ISO alpha-3 code, or "" when the
// code has no region assignment.
func RegionForISO(alpha3 string) string {
	return regionByAlpha3[strings.ToUpper(alpha3)]
}

// Regions returns the fixed set of region labels.
func Regions() []string {
	return []string{
		RegionAfrica, RegionAsia, RegionEurope,
		RegionNorthAmerica, RegionSouthAmerica, RegionOceania,
	}
}
