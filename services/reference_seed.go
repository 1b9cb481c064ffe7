package services

import (
	"log"
	"permit-management-api/models"

	"gorm.io/gorm"
)

type permitTypeSeed struct {
	id       string
	name     string
	days     int
	feeCedis int64
	docs     []string
}

// permitTypeSeeds carries the Ghanaian permit categories and their required
// document lists, loaded once at startup when the table is empty.
var permitTypeSeeds = []permitTypeSeed{
	{"residential_single", "Residential - Single Family", 60, 850, []string{
		"Completed Application Form",
		"Site Plan (approved by Survey Department)",
		"Architectural Drawings",
		"Land Title Certificate",
		"Structural Engineer's Report",
		"Indenture (if applicable)",
	}},
	{"residential_compound", "Residential - Compound House", 75, 1200, []string{
		"Environmental Impact Assessment (EIA)",
		"Fire Safety Certificate",
		"Waste Management Plan",
		"All documents required for single-family residential",
	}},
	{"commercial_retail", "Commercial - Retail", 90, 1500, []string{
		"Business Operating License",
		"Market Operators Association Approval (for market stalls)",
		"Accessibility Compliance Certificate",
		"Sanitary Facility Plans",
	}},
	{"commercial_office", "Commercial - Office", 90, 1800, []string{
		"Parking Space Allocation Plan",
		"Elevator Safety Certificate (for buildings >2 floors)",
		"Electrical Wiring Diagram",
	}},
	{"industrial_light", "Industrial - Light", 120, 2500, []string{
		"EPA Permit",
		"Noise Mitigation Plan",
		"Worker Safety Plan",
	}},
	{"industrial_heavy", "Industrial - Heavy", 150, 4000, []string{
		"Ministry of Trade Approval",
		"Hazardous Materials Handling Plan",
		"All documents required for light industrial",
	}},
	{"institutional", "Institutional", 120, 2000, []string{
		"Ministry of Education/Health Approval (as applicable)",
		"Disability Access Compliance Certificate",
		"Emergency Evacuation Plan",
	}},
	{"public_assembly", "Public Assembly", 120, 2200, []string{
		"Ghana Fire Service Approval",
		"Public Health Certificate",
		"Crowd Control Plan",
	}},
	{"infrastructure", "Infrastructure", 180, 5000, []string{
		"Ministry of Roads and Highways Approval",
		"Traffic Impact Assessment",
		"Geotechnical Survey Report",
	}},
	{"heritage_alteration", "Heritage Alteration", 150, 1500, []string{
		"Ghana Museums & Monuments Board Approval",
		"Historical Impact Assessment",
		"Conservation Method Statement",
	}},
	{"coastal_dev", "Coastal Development", 150, 3000, []string{
		"EPA Coastal Zone Permit",
		"Erosion Control Plan",
		"Marine Impact Study",
	}},
	{"high_rise", "High Rise (>6 floors)", 180, 6000, []string{
		"Wind Load Analysis Report",
		"Seismic Stability Report",
		"Crane Operation Plan",
	}},
	{"mining_support", "Mining Support Structure", 150, 3500, []string{
		"Minerals Commission Permit",
		"Mine Safety Compliance Certificate",
		"Explosives Storage Plan (if applicable)",
	}},
	{"market_stall", "Market Stall / Kiosk", 30, 250, []string{
		"Assembly Business Permit",
		"Market Allocation Letter",
		"Simple Sketch Plan",
	}},
	{"agric_structure", "Agricultural Structure", 60, 600, []string{
		"Ministry of Food & Agriculture Approval",
		"Pest Control Plan",
		"Water Runoff Management Plan",
	}},
	{"telecomm_tower", "Telecommunications Tower", 120, 4500, []string{
		"NCA Frequency Authorization",
		"Radiation Safety Certificate",
		"Aviation Light Compliance",
	}},
	{"billboard_sign", "Billboard / Signage", 45, 800, []string{
		"Advertising Standards Authority Permit",
		"Structural Integrity Certificate",
		"Lighting Impact Assessment (for illuminated signs)",
	}},
	{"temporary", "Temporary Structure", 30, 300, []string{
		"Temporary Occupation Permit",
		"Demolition Bond (if applicable)",
		"Duration of Use Declaration",
	}},
}

// EnsureReferenceData seeds the permit type catalogue when missing. Existing
// rows are left untouched so assemblies can adjust fees and durations.
func EnsureReferenceData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.PermitType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, seed := range permitTypeSeeds {
		permitType := models.PermitType{
			ID:                   seed.id,
			Name:                 seed.name,
			RequiredDocuments:    seed.docs,
			MinRequiredDocuments: len(seed.docs),
			StandardDurationDays: seed.days,
			BaseFeePesewas:       seed.feeCedis * 100,
			IsActive:             true,
		}
		if err := db.Create(&permitType).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d permit types", len(permitTypeSeeds))
	return nil
}
