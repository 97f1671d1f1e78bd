package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/autonear/autonear-backend/config"
	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

func main() {
	reset := flag.Bool("reset", false, "delete every shop (and its service requests) before importing")
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: go run ./cmd/seed [-reset] [-yes] [shops.xlsx]")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(false); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	shops := db.InitialShops()
	if path := flag.Arg(0); path != "" {
		fmt.Printf("Reading XLSX file: %s\n", path)
		shops, err = readShopsFromXLSX(path)
		if err != nil {
			log.Fatal("Failed to read XLSX:", err)
		}
	}

	fmt.Printf("Total shops to import: %d (reset: %t)\n", len(shops), *reset)

	if !*yes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	inserted, err := db.SeedShops(db.GetDB(), shops, *reset)
	if err != nil {
		log.Fatal("Failed to seed shops:", err)
	}
	if inserted == 0 {
		fmt.Println("Directory already has shops; nothing imported. Use -reset to replace them.")
		return
	}
	fmt.Printf("Import completed successfully! Total shops imported: %d\n", inserted)
}

// Recognised header names. Columns may appear in any order; name and city
// are required.
var columns = []string{
	"name", "description", "services", "address", "barangay", "city",
	"province", "latitude", "longitude", "phone", "opening_hours",
	"rating", "review_count", "is_verified",
}

func readShopsFromXLSX(filePath string) ([]model.Shop, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	index := headerIndex(rows[0])
	for _, required := range []string{"name", "city"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	var shops []model.Shop
	seen := make(map[string]bool)
	skipped := 0

	for _, row := range rows[1:] {
		shop, ok := parseShopRow(row, index)
		if !ok {
			skipped++
			continue
		}

		key := strings.ToLower(shop.Name + "|" + shop.City + "|" + shop.Address)
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true
		shops = append(shops, shop)
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid shops: %d\n", len(shops))
	fmt.Printf("  Skipped rows: %d\n", skipped)

	return shops, nil
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		h = strings.ReplaceAll(h, " ", "_")
		for _, c := range columns {
			if h == c {
				index[c] = i
			}
		}
	}
	return index
}

func parseShopRow(row []string, index map[string]int) (model.Shop, bool) {
	cell := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	shop := model.Shop{
		Name:         cell("name"),
		Description:  cell("description"),
		Services:     cell("services"),
		Address:      cell("address"),
		Barangay:     cell("barangay"),
		City:         cell("city"),
		Province:     cell("province"),
		Phone:        cell("phone"),
		OpeningHours: cell("opening_hours"),
	}
	if shop.Name == "" || shop.City == "" {
		return model.Shop{}, false
	}
	if shop.Province == "" {
		shop.Province = model.ProvinceOf(shop.City)
	}

	// coordinates are optional but must come as a valid pair
	lat, latErr := strconv.ParseFloat(cell("latitude"), 64)
	lng, lngErr := strconv.ParseFloat(cell("longitude"), 64)
	if latErr == nil && lngErr == nil && lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180 {
		shop.Latitude = &lat
		shop.Longitude = &lng
	}

	if rating, err := strconv.ParseFloat(cell("rating"), 64); err == nil && rating >= 0 && rating <= 5 {
		shop.Rating = rating
	}
	if count, err := strconv.Atoi(cell("review_count")); err == nil && count >= 0 {
		shop.ReviewCount = count
	}
	if verified, err := strconv.ParseBool(cell("is_verified")); err == nil {
		shop.IsVerified = verified
	}

	return shop, true
}
