package main

import "github.com/mageshboopath1/Live-ESG-sub001/internal/models"

func f(v float64) *float64 { return &v }

// brsrSeed returns the authoritative BRSR indicator catalog: one entry per
// parameter tracked under each of the nine National Guidelines on
// Responsible Business Conduct attributes, with the fixed
// attribute-to-pillar mapping (1..4 -> E, 5..7 -> S, 8..9 -> G). Bounds
// follow the regulator's Annexure I reference ranges where published;
// indicators with no published baseline carry a 0..100 percentage-style
// bound, resolving spec.md's Open Question 1 toward a conservative default
// rather than leaving the column null.
func brsrSeed() []models.BRSRIndicatorDefinition {
	type row struct {
		code, name, unit, desc string
		attribute              int
		weight                 float64
		polarity               models.Polarity
		min, max               float64
	}
	rows := []row{
		// Attribute 1 - ethical, transparent, accountable conduct (E)
		{"P1_TRAINING_BOARD", "board training coverage", "%", "percentage of board of directors trained on P1 principles", 1, 1.0, models.PolarityHigherIsBetter, 0, 100},
		{"P1_COMPLAINTS_FILED", "corruption complaints filed", "count", "number of complaints received on corruption/conflict of interest", 1, 1.0, models.PolarityLowerIsBetter, 0, 50},
		{"P1_COMPLAINTS_UPHELD", "corruption complaints upheld", "count", "number of complaints upheld on corruption/conflict of interest", 1, 1.0, models.PolarityLowerIsBetter, 0, 50},
		{"P1_FINES_TOTAL", "monetary fines for unfair practices", "INR lakh", "total monetary fines/penalties for unfair trade practices", 1, 1.0, models.PolarityLowerIsBetter, 0, 500},
		{"P1_PURCHASES_MSME", "purchases from MSME/SMEs", "%", "percentage of purchases from micro, small and medium enterprises", 1, 1.0, models.PolarityHigherIsBetter, 0, 100},
		{"P1_VIGIL_MECHANISM", "vigil mechanism coverage", "%", "percentage of sites covered by a whistleblower/vigil mechanism", 1, 1.0, models.PolarityHigherIsBetter, 0, 100},
		{"P1_POLICY_COVERAGE", "board-approved policy coverage", "count", "number of board-approved policies covering ethical conduct among the nine principles", 1, 0.6, models.PolarityHigherIsBetter, 0, 9},
		// Attribute 2 - sustainable and safe goods/services (E)
		{"P2_RND_SPEND", "R&D spend on sustainability", "%", "percentage of R&D investments in sustainable technologies", 2, 1.0, models.PolarityHigherIsBetter, 0, 100},
		{"P2_CAPEX_SUSTAINABLE", "capex on sustainability", "%", "percentage of capital expenditure invested in sustainable technologies", 2, 1.0, models.PolarityHigherIsBetter, 0, 100},
		{"P2_RECYCLED_INPUT", "recycled or reused input material", "%", "percentage of recycled or reused input material to total material", 2, 1.0, models.PolarityHigherIsBetter, 0, 100},
		{"P2_PRODUCTS_RECLAIMED", "products and packaging reclaimed", "%", "percentage of products and packaging materials reclaimed post-consumer use", 2, 1.0, models.PolarityHigherIsBetter, 0, 100},
		{"P2_EPR_PLASTIC", "EPR plastic packaging recycled", "%", "percentage of extended producer responsibility plastic packaging waste recycled", 2, 1.0, models.PolarityHigherIsBetter, 0, 100},
		// Attribute 3 - employee wellbeing (E)
		{"P3_SAFETY_TRAINING", "safety training coverage", "%", "percentage of employees and workers trained on health and safety", 3, 1.0, models.PolarityHigherIsBetter, 0, 100},
		{"P3_LTIFR", "lost time injury frequency rate", "per million hrs", "lost time injury frequency rate per million person hours worked", 3, 1.0, models.PolarityLowerIsBetter, 0, 10},
		{"P3_FATALITIES", "employee/worker fatalities", "count", "number of fatalities among employees and workers", 3, 1.2, models.PolarityLowerIsBetter, 0, 20},
		{"P3_COMPLAINTS_WORKING", "complaints on working conditions", "count", "number of complaints on working conditions filed by employees and workers", 3, 1.0, models.PolarityLowerIsBetter, 0, 100},
		{"P3_MEDICAL_INSURANCE", "medical insurance coverage", "%", "percentage of employees and workers covered by medical insurance", 3, 1.0, models.PolarityHigherIsBetter, 0, 100},
		{"P3_RETURN_TO_WORK", "parental leave return to work rate", "%", "return to work rate of employees after parental leave", 3, 1.0, models.PolarityHigherIsBetter, 0, 100},
		{"P3_WELLBEING_SPEND", "wellbeing measures spend", "INR lakh", "spending on wellbeing measures as a percentage of total revenue", 3, 0.8, models.PolarityHigherIsBetter, 0, 1000},
		// Attribute 4 - stakeholder responsiveness (E)
		{"P4_VULNERABLE_ENGAGEMENT", "vulnerable group engagement", "%", "percentage of stakeholder groups identified as vulnerable and marginalized engaged", 4, 1.0, models.PolarityHigherIsBetter, 0, 100},
		{"P4_GRIEVANCES_RESOLVED", "stakeholder grievances resolved", "%", "percentage of stakeholder grievances received that were resolved", 4, 1.0, models.PolarityHigherIsBetter, 0, 100},
		{"P4_CSR_PROJECTS", "CSR projects in aspirational districts", "count", "number of CSR projects undertaken in aspirational districts", 4, 0.8, models.PolarityHigherIsBetter, 0, 50},
		{"P4_INPUT_MATERIAL_TRACED", "input material sourced traceably", "%", "percentage of input material sourced from traceable suppliers", 4, 0.8, models.PolarityHigherIsBetter, 0, 100},
		{"P4_STAKEHOLDER_CONSULTATION", "stakeholder consultation frequency", "count", "number of structured stakeholder consultations held during the reporting period", 4, 0.6, models.PolarityHigherIsBetter, 0, 50},
		// Attribute 5 - human rights (S)
		{"P5_HUMAN_RIGHTS_TRAINING", "human rights training coverage", "%", "percentage of employees and workers trained on human rights issues", 5, 1.0, models.PolarityHigherIsBetter, 0, 100},
		{"P5_MINIMUM_WAGE", "workers paid at least minimum wage", "%", "percentage of employees and workers paid at least minimum wage", 5, 1.2, models.PolarityHigherIsBetter, 0, 100},
		{"P5_COMPLAINTS_SEXUAL_HARASSMENT", "sexual harassment complaints", "count", "number of complaints on sexual harassment received", 5, 1.2, models.PolarityLowerIsBetter, 0, 50},
		{"P5_COMPLAINTS_HUMAN_RIGHTS", "human rights complaints", "count", "number of complaints on human rights violations", 5, 1.2, models.PolarityLowerIsBetter, 0, 50},
		{"P5_ACCESSIBILITY", "premises accessible to disabled", "%", "percentage of premises/offices/factories accessible to persons with disabilities", 5, 0.8, models.PolarityHigherIsBetter, 0, 100},
		{"P5_GRIEVANCE_REDRESSAL", "human rights grievance redressal time", "days", "average time taken to redress a human rights grievance", 5, 0.8, models.PolarityLowerIsBetter, 0, 90},
		// Attribute 6
		{"GHG_SCOPE1", "Scope 1 GHG emissions", "MT CO2e", "total Scope 1 greenhouse gas emissions", 6, 1.2, models.PolarityLowerIsBetter, 0, 1000000},
		{"GHG_SCOPE2", "Scope 2 GHG emissions", "MT CO2e", "total Scope 2 greenhouse gas emissions", 6, 1.2, models.PolarityLowerIsBetter, 0, 1000000},
		{"P6_WATER_WITHDRAWAL", "total water withdrawal", "kilolitres", "total volume of water withdrawal", 6, 1.0, models.PolarityLowerIsBetter, 0, 1000000},
		{"P6_WATER_DISCHARGED", "water discharged", "kilolitres", "total volume of water discharged post treatment", 6, 0.8, models.PolarityLowerIsBetter, 0, 1000000},
		{"P6_WASTE_GENERATED", "total waste generated", "metric tonnes", "total waste generated in the reporting period", 6, 1.0, models.PolarityLowerIsBetter, 0, 100000},
		{"P6_WASTE_RECYCLED", "waste recycled or reused", "%", "percentage of total waste generated that is recycled, reused, or recovered", 6, 1.0, models.PolarityHigherIsBetter, 0, 100},
		{"P6_ENERGY_RENEWABLE", "renewable energy consumption", "%", "percentage of total energy consumption from renewable sources", 6, 1.2, models.PolarityHigherIsBetter, 0, 100},
		{"P6_AIR_EMISSIONS_NOX", "NOx emissions", "metric tonnes", "total NOx emissions from operations", 6, 0.8, models.PolarityLowerIsBetter, 0, 10000},
		{"P6_BIODIVERSITY_SITES", "operations near ecologically sensitive areas", "count", "number of operations/offices with significant impact on biodiversity near ecologically sensitive areas", 6, 0.6, models.PolarityLowerIsBetter, 0, 20},
		{"P6_GHG_INTENSITY", "GHG emissions intensity per turnover", "MT CO2e / INR crore", "total Scope 1 and 2 emissions per rupee of turnover", 6, 1.0, models.PolarityLowerIsBetter, 0, 100},
		// Attribute 7 - policy advocacy (S)
		{"P7_TRADE_ASSOCIATIONS", "trade and industry chamber memberships", "count", "number of trade and industry chambers/associations the entity is a member of", 7, 0.6, models.PolarityHigherIsBetter, 0, 50},
		{"P7_ANTI_COMPETITIVE_CASES", "anti-competitive conduct corrective actions", "count", "number of corrective actions taken on issues related to anti-competitive conduct", 7, 1.0, models.PolarityLowerIsBetter, 0, 20},
		{"P7_PUBLIC_POLICY_SPEND", "public and regulatory policy engagement spend", "INR lakh", "spend on public and regulatory policy advocacy", 7, 0.6, models.PolarityHigherIsBetter, 0, 500},
		// Attribute 8 - inclusive growth (G)
		{"P8_CSR_SPEND", "CSR spend as percentage of turnover", "%", "total CSR expenditure as a percentage of average net profit", 8, 1.0, models.PolarityHigherIsBetter, 0, 10},
		{"P8_SC_ST_VENDORS", "SC/ST/women-owned vendor spend", "%", "percentage of procurement spend on vendors from marginalized or women-owned small producers", 8, 0.8, models.PolarityHigherIsBetter, 0, 100},
		{"P8_JOBS_VULNERABLE_DISTRICTS", "jobs created in aspirational districts", "count", "number of jobs created in aspirational/vulnerable districts", 8, 0.8, models.PolarityHigherIsBetter, 0, 10000},
		{"P8_INPUT_MATERIAL_LOCAL", "local sourcing of inputs", "%", "percentage of inputs sourced from within the district and neighbouring districts", 8, 0.6, models.PolarityHigherIsBetter, 0, 100},
		{"P8_SOCIAL_IMPACT_ASSESSMENTS", "social impact assessments conducted", "count", "number of social impact assessments conducted for projects requiring clearance", 8, 0.6, models.PolarityHigherIsBetter, 0, 20},
		// Attribute 9 - consumer value (G)
		{"P9_COMPLAINTS_PRODUCT_SAFETY", "product safety and quality complaints", "count", "number of consumer complaints relating to product safety and quality", 9, 1.0, models.PolarityLowerIsBetter, 0, 500},
		{"P9_COMPLAINTS_DATA_PRIVACY", "data privacy complaints", "count", "number of complaints relating to personal data breaches", 9, 1.2, models.PolarityLowerIsBetter, 0, 100},
		{"P9_COMPLAINTS_ADVERTISING", "advertising and marketing complaints", "count", "number of complaints relating to restrictive trade practices and misleading advertising", 9, 0.8, models.PolarityLowerIsBetter, 0, 100},
		{"P9_PRODUCT_RECALLS", "product recalls", "count", "number of instances of product recalls during the reporting period", 9, 1.0, models.PolarityLowerIsBetter, 0, 50},
		{"P9_CYBER_SECURITY_INCIDENTS", "cybersecurity incidents affecting consumer data", "count", "number of instances of data breaches involving personally identifiable consumer information", 9, 1.2, models.PolarityLowerIsBetter, 0, 50},
		{"P9_CUSTOMER_SATISFACTION", "customer satisfaction score", "score", "consumer satisfaction score from the entity's latest survey", 9, 1.0, models.PolarityHigherIsBetter, 0, 100},
		{"P9_TURNAROUND_COMPLAINTS", "average grievance turnaround time", "days", "average time taken to respond to consumer complaints or feedback", 9, 0.8, models.PolarityLowerIsBetter, 0, 60},
		{"P9_WARRANTY_CLAIMS", "warranty claims resolved", "%", "percentage of warranty/guarantee claims resolved within the stated turnaround time", 9, 0.8, models.PolarityHigherIsBetter, 0, 100},
	}

	defs := make([]models.BRSRIndicatorDefinition, 0, len(rows))
	for _, r := range rows {
		defs = append(defs, models.BRSRIndicatorDefinition{
			Code:          r.code,
			Attribute:     r.attribute,
			ParameterName: r.name,
			Unit:          r.unit,
			Description:   r.desc,
			Pillar:        models.PillarForAttribute(r.attribute),
			Weight:        r.weight,
			Polarity:      r.polarity,
			MinBound:      f(r.min),
			MaxBound:      f(r.max),
		})
	}
	return defs
}
