package prescription

// Sample returns the demonstration prescription used by the "load sample"
// action.
func Sample() Data {
	return Data{
		Patient: Patient{
			Name:                "John Smith",
			Age:                 "45",
			Gender:              "Male",
			MedicalRecordNumber: "MR-2024-001234",
		},
		DiagnosisType: DiagnosisDefinitive,
		Diagnoses: []DiagnosisItem{
			{ID: "1", Text: "Hypertension (Essential)"},
			{ID: "2", Text: "Type 2 Diabetes Mellitus with poor glycemic control"},
			{ID: "3", Text: "Dyslipidemia"},
		},
		Medicines: []Medicine{
			{
				ID:           "1",
				Name:         "Metformin",
				Dosage:       "500mg",
				Frequency:    "Twice daily",
				Duration:     "3 months",
				Instructions: "Take with meals to reduce stomach upset",
			},
			{
				ID:           "2",
				Name:         "Lisinopril",
				Dosage:       "10mg",
				Frequency:    "Once daily",
				Duration:     "3 months",
				Instructions: "Take in the morning, monitor blood pressure daily",
			},
			{
				ID:           "3",
				Name:         "Atorvastatin",
				Dosage:       "20mg",
				Frequency:    "Once daily at bedtime",
				Duration:     "3 months",
				Instructions: "Take at night, avoid grapefruit juice",
			},
		},
		Tests: []Test{
			{ID: "1", Name: "HbA1c (Glycated Hemoglobin)", Instructions: "No fasting required, can be done at any time"},
			{ID: "2", Name: "Lipid Profile", Instructions: "12-hour fasting required before blood collection"},
			{ID: "3", Name: "Kidney Function Test (Creatinine & BUN)", Instructions: "No special preparation needed"},
		},
		GeneralInstructions: "Follow a low-sodium, diabetic diet. Exercise for at least 30 minutes daily (walking, swimming). " +
			"Monitor blood pressure and blood sugar levels as instructed. Avoid smoking and limit alcohol consumption. " +
			"Take medications at the same time each day.",
		FollowUpDate:         "2024-01-15",
		FollowUpInstructions: "Bring all medication bottles and blood pressure log",
	}
}

// Genders lists the options offered by the gender selector.
func Genders() []string {
	return []string{"Male", "Female", "Other"}
}
