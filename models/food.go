package models

// One recognized item on the plate
type FoodItem struct {
	Name        string  `json:"name"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	Fiber       float64 `json:"fiber"`
	Sugar       float64 `json:"sugar"`
	ServingSize string  `json:"serving_size"`
	Confidence  float64 `json:"confidence"` // 0..1
}

// Totals across every FoodItem of one analysis
type NutritionSummary struct {
	TotalCalories float64 `json:"totalCalories"`
	TotalProtein  float64 `json:"totalProtein"`
	TotalCarbs    float64 `json:"totalCarbs"`
	TotalFat      float64 `json:"totalFat"`
	TotalFiber    float64 `json:"totalFiber"`
	TotalSugar    float64 `json:"totalSugar"`
}

// AnalysisResult is the only body /analyze ever answers with, whether it came
// from the vision model or from fallback data.
type AnalysisResult struct {
	Foods         []FoodItem       `json:"foods"`
	Summary       NutritionSummary `json:"summary"`
	AnalysisNotes string           `json:"analysis_notes"`
}

// Summarize adds up the macros of all items.
func Summarize(foods []FoodItem) NutritionSummary {
	var s NutritionSummary
	for _, f := range foods {
		s.TotalCalories += f.Calories
		s.TotalProtein += f.Protein
		s.TotalCarbs += f.Carbs
		s.TotalFat += f.Fat
		s.TotalFiber += f.Fiber
		s.TotalSugar += f.Sugar
	}
	return s
}

// IsZero reports whether no total was filled in.
func (s NutritionSummary) IsZero() bool {
	return s == NutritionSummary{}
}

// Sanitize clamps values coming from an untrusted source so the result keeps
// its invariants: non-negative nutrients and confidence within [0,1].
// A summary left empty by the source is recomputed from the items.
func (r *AnalysisResult) Sanitize() {
	for i := range r.Foods {
		f := &r.Foods[i]
		f.Calories = nonNegative(f.Calories)
		f.Protein = nonNegative(f.Protein)
		f.Carbs = nonNegative(f.Carbs)
		f.Fat = nonNegative(f.Fat)
		f.Fiber = nonNegative(f.Fiber)
		f.Sugar = nonNegative(f.Sugar)
		switch {
		case f.Confidence < 0:
			f.Confidence = 0
		case f.Confidence > 1:
			f.Confidence = 1
		}
	}

	if r.Summary.IsZero() {
		r.Summary = Summarize(r.Foods)
	}
	s := &r.Summary
	s.TotalCalories = nonNegative(s.TotalCalories)
	s.TotalProtein = nonNegative(s.TotalProtein)
	s.TotalCarbs = nonNegative(s.TotalCarbs)
	s.TotalFat = nonNegative(s.TotalFat)
	s.TotalFiber = nonNegative(s.TotalFiber)
	s.TotalSugar = nonNegative(s.TotalSugar)
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
