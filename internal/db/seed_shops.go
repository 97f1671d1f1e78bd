package db

import (
	"github.com/autonear/autonear-backend/internal/app/model"
)

// InitialShops is the starter directory loaded into an empty database.
func InitialShops() []model.Shop {
	return []model.Shop{
		{
			Name:         "KarrJackson Automotive - Osmeña",
			Description:  "CDO's premier destination for comprehensive engine work, maintenance, and genuine parts.",
			Services:     "General Repair, Engine Tune-Up, Oil Change, Brake Services",
			Address:      "Osmeña Street corner C.M. Recto Ave",
			Barangay:     "Barangay 27",
			City:         "Cagayan de Oro",
			Province:     "Misamis Oriental",
			Latitude:     coord(8.4845),
			Longitude:    coord(124.6531),
			Phone:        "088-856-9119",
			OpeningHours: "8:00 AM - 5:00 PM",
			Rating:       4.7,
			ReviewCount:  245,
			IsVerified:   true,
		},
		{
			Name:         "Goodyear Autocare LCG - Antonio Luna",
			Description:  "Official Goodyear center. Major tire and automotive maintenance hub known for reliability.",
			Services:     "Tire Services, Wheel Alignment, Suspension, Oil Change",
			Address:      "Antonio Luna St",
			Barangay:     "Barangay 28",
			City:         "Cagayan de Oro",
			Province:     "Misamis Oriental",
			Latitude:     coord(8.4802),
			Longitude:    coord(124.6488),
			Phone:        "088-123-9999",
			OpeningHours: "8:00 AM - 5:00 PM",
			Rating:       4.8,
			ReviewCount:  312,
			IsVerified:   true,
		},
		{
			Name:         "Philtyres Yokohama Center - Capt. Vicente Roa",
			Description:  "Official Yokohama tire dealer offering expert suspension and alignment services.",
			Services:     "Tire Services, Wheel Alignment, Suspension",
			Address:      "Capt. Vicente Roa Street",
			Barangay:     "Barangay 23",
			City:         "Cagayan de Oro",
			Province:     "Misamis Oriental",
			Latitude:     coord(8.4815),
			Longitude:    coord(124.6465),
			Phone:        "088-857-5555",
			OpeningHours: "8:00 AM - 6:00 PM",
			Rating:       4.5,
			ReviewCount:  156,
			IsVerified:   true,
		},
		{
			Name:         "Auto Quix - Masterson Ave",
			Description:  "Trusted uptown CDO service center for quick repairs and regular maintenance.",
			Services:     "Oil Change, General Repair, Electrical, Brakes",
			Address:      "Masterson Ave, Uptown",
			Barangay:     "Upper Balulang",
			City:         "Cagayan de Oro",
			Province:     "Misamis Oriental",
			Latitude:     coord(8.4411),
			Longitude:    coord(124.6215),
			Phone:        "088-859-0000",
			OpeningHours: "8:00 AM - 5:00 PM",
			Rating:       4.2,
			ReviewCount:  85,
			IsVerified:   true,
		},
		{
			Name:         "Red Carpet Auto Central - Bulua",
			Description:  "Premium car detailing and ceramic coating studio specializing in high-end vehicle care.",
			Services:     "Car Wash, Body & Paint, Detailing, Tinting",
			Address:      "Bulua Diversion Road",
			Barangay:     "Bulua",
			City:         "Cagayan de Oro",
			Province:     "Misamis Oriental",
			Latitude:     coord(8.4975),
			Longitude:    coord(124.6185),
			Phone:        "0917-700-0000",
			OpeningHours: "8:00 AM - 6:00 PM",
			Rating:       4.8,
			ReviewCount:  60,
			IsVerified:   true,
		},
		{
			Name:         "Comglasco Aguila Glass - El Salvador",
			Description:  "Specialized auto glass services, windshield replacement, and tint installation.",
			Services:     "Auto Glass, Tinting, Windshield Repair",
			Address:      "National Highway, Molugan",
			Barangay:     "Molugan",
			City:         "El Salvador",
			Province:     "Misamis Oriental",
			Latitude:     coord(8.5205),
			Longitude:    coord(124.5714),
			Phone:        "088-231-1234",
			OpeningHours: "8:00 AM - 5:00 PM",
			Rating:       4.5,
			ReviewCount:  30,
			IsVerified:   true,
		},
		{
			Name:         "J.U. Motor Vehicle Care - Tagoloan",
			Description:  "Comprehensive vehicle repair and maintenance serving the Tagoloan area.",
			Services:     "General Repair, Engine Tune-Up, Oil Change",
			Address:      "National Highway, Tagoloan",
			Barangay:     "Poblacion",
			City:         "Tagoloan",
			Province:     "Misamis Oriental",
			Latitude:     coord(8.4715),
			Longitude:    coord(124.7505),
			Phone:        "0936-187-2833",
			OpeningHours: "8:00 AM - 5:00 PM",
			Rating:       4.2,
			ReviewCount:  15,
			IsVerified:   true,
		},
		{
			Name:         "HPI Auto Spa - Lapasan",
			Description:  "Expert detailing services and ceramic coating studio known for thorough, premium care.",
			Services:     "Car Wash, Detailing, Interior Cleaning",
			Address:      "National Highway",
			Barangay:     "Lapasan",
			City:         "Cagayan de Oro",
			Province:     "Misamis Oriental",
			Latitude:     coord(8.4875),
			Longitude:    coord(124.6655),
			Phone:        "0922-555-1234",
			OpeningHours: "8:30 AM - 6:00 PM",
			Rating:       4.9,
			ReviewCount:  45,
			IsVerified:   true,
		},
		{
			Name:         "Jimsco Diesel Calibration - CDO",
			Description:  "Professional diesel engine calibration and injector repair specialists.",
			Services:     "Engine Tune-Up, Diesel Calibration, Injector Repair",
			Address:      "Julio Pacana St",
			Barangay:     "Puntod",
			City:         "Cagayan de Oro",
			Province:     "Misamis Oriental",
			Latitude:     coord(8.4905),
			Longitude:    coord(124.6522),
			Phone:        "088-856-4444",
			OpeningHours: "8:00 AM - 5:00 PM",
			Rating:       4.4,
			ReviewCount:  25,
			IsVerified:   true,
		},
		{
			Name:         "Renand Montajes - Kauswagan",
			Description:  "Long-standing automotive tire specialist and general repair mechanic.",
			Services:     "Tire Services, Wheel Alignment, General Repair",
			Address:      "Kauswagan Highway",
			Barangay:     "Kauswagan",
			City:         "Cagayan de Oro",
			Province:     "Misamis Oriental",
			Latitude:     coord(8.4955),
			Longitude:    coord(124.6322),
			Phone:        "088-858-1234",
			OpeningHours: "8:00 AM - 6:00 PM",
			Rating:       4.3,
			ReviewCount:  50,
			IsVerified:   true,
		},
		{
			Name:         "Superperformance Autocare - Kauswagan",
			Description:  "Reliable auto repair and maintenance service located across Savemore Kauswagan.",
			Services:     "General Repair, Oil Change, Brakes",
			Address:      "Kauswagan Highway",
			Barangay:     "Kauswagan",
			City:         "Cagayan de Oro",
			Province:     "Misamis Oriental",
			Latitude:     coord(8.4965),
			Longitude:    coord(124.6345),
			Phone:        "088-858-5555",
			OpeningHours: "8:30 AM - 5:30 PM",
			Rating:       4.3,
			ReviewCount:  40,
			IsVerified:   true,
		},
		{
			Name:         "Philtyres Yokohama - Ramon Chaves",
			Description:  "Newest branch of Philtyres offering the same high-quality tire and wheel services.",
			Services:     "Tire Services, Wheel Alignment, Vulcanizing",
			Address:      "Ramon Chaves St",
			Barangay:     "Barangay 23",
			City:         "Cagayan de Oro",
			Province:     "Misamis Oriental",
			Latitude:     coord(8.4828),
			Longitude:    coord(124.6475),
			Phone:        "088-857-7777",
			OpeningHours: "8:00 AM - 6:00 PM",
			Rating:       4.6,
			ReviewCount:  40,
			IsVerified:   true,
		},
		{
			Name:         "Rapide Auto Service - Pasong Tamo",
			Description:  "The Philippines' leading auto service center. Expert mechanical, maintenance, and brake services.",
			Services:     "General Repair, Oil Change, Brake Services, Suspension",
			Address:      "2206 Pasong Tamo, Brgy. Pio Del Pilar",
			Barangay:     "Pio Del Pilar",
			City:         "Makati",
			Province:     "Metro Manila",
			Latitude:     coord(14.5512),
			Longitude:    coord(121.0125),
			Phone:        "02-8843-1234",
			OpeningHours: "8:00 AM - 5:00 PM",
			Rating:       4.1,
			ReviewCount:  342,
			IsVerified:   true,
		},
	}
}

func coord(v float64) *float64 {
	return &v
}
