package feeds

import "marketwire/internal/model"

var regionAnchors = map[model.Region]string{
	model.RegionGlobal:    "global markets",
	model.RegionIndonesia: "Indonesia economy",
	model.RegionUSA:       "US markets",
}

var sectorClauses = map[model.Sector]string{
	model.SectorTechnology: "technology OR semiconductor OR startup",
	model.SectorFinance:    "banking OR \"interest rate\" OR bonds OR currency",
	model.SectorMining:     "mining OR nickel OR coal OR commodities",
	model.SectorHealthcare: "healthcare OR pharmaceutical OR hospital",
	model.SectorRegulation: "regulation OR tariff OR policy OR sanctions",
	model.SectorConsumer:   "retail OR consumer OR \"consumer spending\"",
}

// Supplementary broad queries widen coverage beyond the anchored ones.
var broadQueries = []string{
	"stock market today",
	"breaking business news",
}

// QueryPlan builds the full query set for one region: one per keyword
// sector, a broad region-level query, and the supplementary broad queries,
// each tagged with the sector it was designed to surface.
func QueryPlan(region model.Region, windowHours int) []Query {
	anchor := regionAnchors[region]

	var plan []Query
	for _, sector := range model.KeywordSectors() {
		plan = append(plan, Query{
			Region:      region,
			HintSector:  sector,
			Terms:       anchor + " " + sectorClauses[sector],
			WindowHours: windowHours,
		})
	}

	plan = append(plan, Query{
		Region:      region,
		HintSector:  model.SectorGeneral,
		Terms:       anchor,
		WindowHours: windowHours,
	})

	for _, terms := range broadQueries {
		plan = append(plan, Query{
			Region:      region,
			HintSector:  model.SectorGeneral,
			Terms:       terms,
			WindowHours: windowHours,
		})
	}

	return plan
}
