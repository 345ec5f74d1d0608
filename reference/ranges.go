/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package reference

// ptr is a helper to create pointers to float64 literals
func ptr(f float64) *float64 {
	return &f
}

// Definitions returns the built-in reference ranges. Values are in each
// parameter's canonical registry unit.
func Definitions() []Range {
	return []Range{
		// ===== WHITE BLOOD CELLS (10^3/µL) =====
		{
			ParameterID: "wbc", AgeRange: AgePediatric, Gender: GenderUnisex,
			ReferenceMin: ptr(4.5), ReferenceMax: ptr(13.0),
		},
		{
			ParameterID: "wbc", AgeRange: AgeAdult, Gender: GenderUnisex,
			ReferenceMin: ptr(4.5), ReferenceMax: ptr(11.0),
			OptimalMin: ptr(5.0), OptimalMax: ptr(8.0),
		},
		{
			ParameterID: "wbc", AgeRange: AgeMiddleAge, Gender: GenderUnisex,
			ReferenceMin: ptr(4.5), ReferenceMax: ptr(11.0),
			OptimalMin: ptr(5.0), OptimalMax: ptr(8.0),
		},
		{
			ParameterID: "wbc", AgeRange: AgeSenior, Gender: GenderUnisex,
			ReferenceMin: ptr(4.0), ReferenceMax: ptr(10.5),
			OptimalMin: ptr(4.5), OptimalMax: ptr(8.0),
		},

		// ===== RED BLOOD CELLS (10^6/µL) =====
		// Pediatric is unisex; adult bands are gender-specific
		{
			ParameterID: "rbc", AgeRange: AgePediatric, Gender: GenderUnisex,
			ReferenceMin: ptr(4.0), ReferenceMax: ptr(5.5),
		},
		{
			ParameterID: "rbc", AgeRange: AgeAll, Gender: GenderMale,
			ReferenceMin: ptr(4.35), ReferenceMax: ptr(5.65),
			OptimalMin: ptr(4.50), OptimalMax: ptr(5.50),
		},
		{
			ParameterID: "rbc", AgeRange: AgeAll, Gender: GenderFemale,
			ReferenceMin: ptr(3.92), ReferenceMax: ptr(5.13),
			OptimalMin: ptr(4.00), OptimalMax: ptr(4.90),
		},
		{
			ParameterID: "rbc", AgeRange: AgeSenior, Gender: GenderMale,
			ReferenceMin: ptr(4.20), ReferenceMax: ptr(5.50),
		},
		{
			ParameterID: "rbc", AgeRange: AgeSenior, Gender: GenderFemale,
			ReferenceMin: ptr(3.80), ReferenceMax: ptr(5.00),
		},

		// ===== HEMOGLOBIN (g/dL) =====
		{
			ParameterID: "hemoglobin", AgeRange: AgePediatric, Gender: GenderUnisex,
			ReferenceMin: ptr(10.0), ReferenceMax: ptr(15.5),
		},
		{
			ParameterID: "hemoglobin", AgeRange: AgeAll, Gender: GenderMale,
			ReferenceMin: ptr(13.2), ReferenceMax: ptr(16.6),
			OptimalMin: ptr(14.0), OptimalMax: ptr(16.0),
		},
		{
			ParameterID: "hemoglobin", AgeRange: AgeAll, Gender: GenderFemale,
			ReferenceMin: ptr(11.6), ReferenceMax: ptr(15.0),
			OptimalMin: ptr(12.5), OptimalMax: ptr(14.5),
		},

		// ===== HEMATOCRIT (%) =====
		{
			ParameterID: "hematocrit", AgeRange: AgeAll, Gender: GenderMale,
			ReferenceMin: ptr(41.0), ReferenceMax: ptr(50.0),
		},
		{
			ParameterID: "hematocrit", AgeRange: AgeAll, Gender: GenderFemale,
			ReferenceMin: ptr(36.0), ReferenceMax: ptr(44.0),
		},

		// ===== RED CELL INDICES =====
		{
			ParameterID: "mcv", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(80.0), ReferenceMax: ptr(96.0),
		},
		{
			ParameterID: "mch", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(27.0), ReferenceMax: ptr(33.0),
		},
		{
			ParameterID: "mchc", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(33.0), ReferenceMax: ptr(36.0),
		},
		{
			ParameterID: "rdw_cv", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(11.5), ReferenceMax: ptr(14.5),
		},

		// ===== PLATELETS (10^3/µL) =====
		{
			ParameterID: "platelets", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(150.0), ReferenceMax: ptr(450.0),
		},
		{
			ParameterID: "mpv", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(7.5), ReferenceMax: ptr(11.5),
		},

		// ===== DIFFERENTIAL (%) =====
		{
			ParameterID: "neutrophils", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(40.0), ReferenceMax: ptr(70.0),
		},
		{
			ParameterID: "lymphocytes", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(20.0), ReferenceMax: ptr(40.0),
		},
		{
			ParameterID: "monocytes", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(2.0), ReferenceMax: ptr(8.0),
		},
		{
			ParameterID: "eosinophils", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(1.0), ReferenceMax: ptr(4.0),
		},
		{
			ParameterID: "basophils", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(0.5), ReferenceMax: ptr(1.0),
		},

		// ===== LIPIDS (mg/dL) =====
		{
			ParameterID: "total_cholesterol", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMax: ptr(200.0), OptimalMax: ptr(180.0),
		},
		{
			ParameterID: "ldl_cholesterol", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMax: ptr(100.0), OptimalMax: ptr(70.0),
		},
		{
			ParameterID: "hdl_cholesterol", AgeRange: AgeAll, Gender: GenderMale,
			ReferenceMin: ptr(40.0), OptimalMin: ptr(50.0),
		},
		{
			ParameterID: "hdl_cholesterol", AgeRange: AgeAll, Gender: GenderFemale,
			ReferenceMin: ptr(50.0), OptimalMin: ptr(60.0),
		},
		{
			ParameterID: "vldl_cholesterol", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(5.0), ReferenceMax: ptr(40.0),
		},
		{
			ParameterID: "non_hdl_cholesterol", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMax: ptr(130.0),
		},
		{
			ParameterID: "triglycerides", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMax: ptr(150.0), OptimalMax: ptr(100.0),
		},
		{
			ParameterID: "apolipoprotein_b", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMax: ptr(90.0), OptimalMax: ptr(80.0),
		},

		// ===== METABOLIC =====
		{
			ParameterID: "glucose_fasting", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(70.0), ReferenceMax: ptr(99.0),
			OptimalMin: ptr(75.0), OptimalMax: ptr(90.0),
		},
		{
			ParameterID: "hba1c", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMax: ptr(5.7), OptimalMax: ptr(5.4),
		},
		{
			ParameterID: "creatinine", AgeRange: AgeAll, Gender: GenderMale,
			ReferenceMin: ptr(0.74), ReferenceMax: ptr(1.35),
		},
		{
			ParameterID: "creatinine", AgeRange: AgeAll, Gender: GenderFemale,
			ReferenceMin: ptr(0.59), ReferenceMax: ptr(1.04),
		},
		{
			ParameterID: "blood_urea_nitrogen", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(7.0), ReferenceMax: ptr(20.0),
		},
		{
			ParameterID: "egfr", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(90.0),
		},
		{
			ParameterID: "uric_acid", AgeRange: AgeAll, Gender: GenderMale,
			ReferenceMin: ptr(3.4), ReferenceMax: ptr(7.1), OptimalMax: ptr(5.0),
		},
		{
			ParameterID: "uric_acid", AgeRange: AgeAll, Gender: GenderFemale,
			ReferenceMin: ptr(2.4), ReferenceMax: ptr(6.1), OptimalMax: ptr(5.0),
		},

		// ===== ELECTROLYTES AND MINERALS =====
		{
			ParameterID: "sodium", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(136.0), ReferenceMax: ptr(145.0),
		},
		{
			ParameterID: "potassium", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(3.5), ReferenceMax: ptr(5.1),
		},
		{
			ParameterID: "chloride", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(98.0), ReferenceMax: ptr(107.0),
		},
		{
			ParameterID: "bicarbonate", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(22.0), ReferenceMax: ptr(29.0),
		},
		{
			ParameterID: "calcium", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(8.6), ReferenceMax: ptr(10.2),
		},
		{
			ParameterID: "phosphorus", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(2.5), ReferenceMax: ptr(4.5),
		},
		{
			ParameterID: "magnesium", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(1.58), ReferenceMax: ptr(2.55), OptimalMin: ptr(2.07),
		},
		{
			ParameterID: "iron", AgeRange: AgeAll, Gender: GenderMale,
			ReferenceMin: ptr(61.0), ReferenceMax: ptr(156.0),
			OptimalMin: ptr(70.0), OptimalMax: ptr(128.0),
		},
		{
			ParameterID: "iron", AgeRange: AgeAll, Gender: GenderFemale,
			ReferenceMin: ptr(37.0), ReferenceMax: ptr(145.0),
			OptimalMin: ptr(61.0), OptimalMax: ptr(120.0),
		},
		{
			ParameterID: "zinc", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(65.0), ReferenceMax: ptr(118.0), OptimalMin: ptr(92.0),
		},
		{
			ParameterID: "ferritin", AgeRange: AgeAll, Gender: GenderMale,
			ReferenceMin: ptr(24.0), ReferenceMax: ptr(336.0),
		},
		{
			ParameterID: "ferritin", AgeRange: AgeAll, Gender: GenderFemale,
			ReferenceMin: ptr(11.0), ReferenceMax: ptr(307.0),
		},

		// ===== LIVER =====
		{
			ParameterID: "alt", AgeRange: AgeAll, Gender: GenderMale,
			ReferenceMin: ptr(10.0), ReferenceMax: ptr(50.0),
		},
		{
			ParameterID: "alt", AgeRange: AgeAll, Gender: GenderFemale,
			ReferenceMin: ptr(10.0), ReferenceMax: ptr(35.0),
		},
		{
			ParameterID: "alt", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(10.0), ReferenceMax: ptr(50.0),
		},
		{
			ParameterID: "ast", AgeRange: AgeAll, Gender: GenderMale,
			ReferenceMin: ptr(10.0), ReferenceMax: ptr(40.0),
		},
		{
			ParameterID: "ast", AgeRange: AgeAll, Gender: GenderFemale,
			ReferenceMin: ptr(10.0), ReferenceMax: ptr(35.0),
		},
		{
			ParameterID: "ggt", AgeRange: AgeAll, Gender: GenderMale,
			ReferenceMin: ptr(10.0), ReferenceMax: ptr(71.0),
		},
		{
			ParameterID: "ggt", AgeRange: AgeAll, Gender: GenderFemale,
			ReferenceMin: ptr(6.0), ReferenceMax: ptr(42.0),
		},
		{
			ParameterID: "bilirubin_total", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(0.3), ReferenceMax: ptr(1.2),
		},
		{
			ParameterID: "bilirubin_direct", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMax: ptr(0.3),
		},
		{
			ParameterID: "bilirubin_indirect", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(0.2), ReferenceMax: ptr(0.8),
		},
		{
			ParameterID: "alkaline_phosphatase", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(40.0), ReferenceMax: ptr(130.0),
		},
		{
			ParameterID: "albumin", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(3.5), ReferenceMax: ptr(5.2),
		},
		{
			ParameterID: "globulin", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(2.0), ReferenceMax: ptr(3.5),
		},
		{
			ParameterID: "total_protein", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(6.4), ReferenceMax: ptr(8.3),
		},

		// ===== VITAMINS, THYROID, INFLAMMATION =====
		{
			ParameterID: "vitamin_d", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(30.0), ReferenceMax: ptr(100.0),
			OptimalMin: ptr(40.0), OptimalMax: ptr(60.0),
		},
		{
			ParameterID: "vitamin_b12", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(203.0), ReferenceMax: ptr(881.0), OptimalMin: ptr(501.0),
		},
		{
			ParameterID: "tsh", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMin: ptr(0.4), ReferenceMax: ptr(4.5),
			OptimalMin: ptr(1.0), OptimalMax: ptr(2.5),
		},
		{
			ParameterID: "hs_crp", AgeRange: AgeAll, Gender: GenderUnisex,
			ReferenceMax: ptr(3.0), OptimalMax: ptr(1.0),
		},
		{
			ParameterID: "esr", AgeRange: AgeAll, Gender: GenderMale,
			ReferenceMin: ptr(0.0), ReferenceMax: ptr(15.0),
		},
		{
			ParameterID: "esr", AgeRange: AgeAll, Gender: GenderFemale,
			ReferenceMin: ptr(0.0), ReferenceMax: ptr(20.0),
		},
	}
}
