package bodycomp

// Sex selects the coefficient set of the body density equation.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

func (s Sex) String() string {
	return string(s)
}

func (s Sex) IsValid() bool {
	switch s {
	case SexMale, SexFemale:
		return true
	default:
		return false
	}
}

// Skinfolds holds the seven Jackson-Pollock sites, in millimeters.
// A nil field means the site was not measured.
type Skinfolds struct {
	Chest       *float64 `json:"chest,omitempty"`
	Axillary    *float64 `json:"axillary,omitempty"`
	Triceps     *float64 `json:"triceps,omitempty"`
	Subscapular *float64 `json:"subscapular,omitempty"`
	Abdominal   *float64 `json:"abdominal,omitempty"`
	Suprailiac  *float64 `json:"suprailiac,omitempty"`
	Thigh       *float64 `json:"thigh,omitempty"`
}

// Complete reports whether all seven sites are present and strictly positive.
func (s Skinfolds) Complete() bool {
	for _, v := range s.sites() {
		if v == nil || *v <= 0 {
			return false
		}
	}
	return true
}

// Sum returns the sum of the seven sites. Must only be called on complete skinfolds.
func (s Skinfolds) Sum() float64 {
	return SumSkinfolds(
		*s.Chest, *s.Axillary, *s.Triceps, *s.Subscapular,
		*s.Abdominal, *s.Suprailiac, *s.Thigh,
	)
}

func (s Skinfolds) sites() []*float64 {
	return []*float64{
		s.Chest, s.Axillary, s.Triceps, s.Subscapular,
		s.Abdominal, s.Suprailiac, s.Thigh,
	}
}

// Circumferences in centimeters; each one is optional and independent of the others.
type Circumferences struct {
	Neck          *float64 `json:"neck,omitempty"`
	Shoulder      *float64 `json:"shoulder,omitempty"`
	Chest         *float64 `json:"chest,omitempty"`
	Waist         *float64 `json:"waist,omitempty"`
	Abdomen       *float64 `json:"abdomen,omitempty"`
	Hip           *float64 `json:"hip,omitempty"`
	ArmRelaxed    *float64 `json:"armRelaxed,omitempty"`
	ArmContracted *float64 `json:"armContracted,omitempty"`
	Forearm       *float64 `json:"forearm,omitempty"`
	ThighProximal *float64 `json:"thighProximal,omitempty"`
	ThighMid      *float64 `json:"thighMid,omitempty"`
	Calf          *float64 `json:"calf,omitempty"`
}

// MeasurementInput is what a trainer records in a single session.
// Everything is optional: the estimator only runs when the full
// skinfold protocol plus sex, age and weight are present.
type MeasurementInput struct {
	Sex            *Sex           `json:"sex,omitempty"`
	Age            *int           `json:"age,omitempty"`
	WeightKg       *float64       `json:"weightKg,omitempty"`
	Skinfolds      Skinfolds      `json:"skinfolds"`
	Circumferences Circumferences `json:"circumferences"`
}

// CanEstimate is the gate in front of the formulas.
func (in MeasurementInput) CanEstimate() bool {
	if in.Sex == nil || !in.Sex.IsValid() {
		return false
	}
	if in.Age == nil || *in.Age <= 0 {
		return false
	}
	if in.WeightKg == nil || *in.WeightKg <= 0 {
		return false
	}
	return in.Skinfolds.Complete()
}

type CompositionResult struct {
	SumSkinfolds float64 `json:"sumSkinfolds"`
	BodyDensity  float64 `json:"bodyDensity"`
	BodyFatPct   float64 `json:"bodyFatPct"`
	FatMassKg    float64 `json:"fatMassKg"`
	LeanMassKg   float64 `json:"leanMassKg"`
}

type Mass struct {
	FatMassKg  float64 `json:"fatMassKg"`
	LeanMassKg float64 `json:"leanMassKg"`
}

// Float returns a pointer to v. Handy for building optional measurements.
func Float(v float64) *float64 {
	return &v
}

func Int(v int) *int {
	return &v
}

func SexPtr(s Sex) *Sex {
	return &s
}
