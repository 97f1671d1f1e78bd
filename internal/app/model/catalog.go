package model

// City is a selectable directory location.
type City struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Province string `json:"province"`
}

var Cities = []City{
	{Label: "Manila", Value: "Manila", Province: "Metro Manila"},
	{Label: "Quezon City", Value: "Quezon City", Province: "Metro Manila"},
	{Label: "Makati", Value: "Makati", Province: "Metro Manila"},
	{Label: "Pasig", Value: "Pasig", Province: "Metro Manila"},
	{Label: "Taguig", Value: "Taguig", Province: "Metro Manila"},
	{Label: "Caloocan", Value: "Caloocan", Province: "Metro Manila"},
	{Label: "Cebu City", Value: "Cebu City", Province: "Cebu"},
	{Label: "Davao City", Value: "Davao City", Province: "Davao del Sur"},
	{Label: "Angeles City", Value: "Angeles City", Province: "Pampanga"},
	{Label: "Antipolo", Value: "Antipolo", Province: "Rizal"},
	{Label: "Cagayan de Oro", Value: "Cagayan de Oro", Province: "Misamis Oriental"},
}

var ServiceTypes = []string{
	"General Repair",
	"Oil Change",
	"Vulcanizing",
	"Tire Services",
	"Car Wash",
	"Engine Tune-Up",
	"Brake Services",
	"Electrical",
	"Air Conditioning",
	"Body & Paint",
}

// ProvinceOf returns the province of a known city, or "" if unknown.
func ProvinceOf(city string) string {
	for _, c := range Cities {
		if c.Value == city {
			return c.Province
		}
	}
	return ""
}
