package domain

import "slices"

// BodyType is the coarse body classification picked during onboarding.
type BodyType string

const (
	BodyTypeSlim     BodyType = "slim"
	BodyTypeAverage  BodyType = "average"
	BodyTypeAthletic BodyType = "athletic"
	BodyTypePlus     BodyType = "plus"
)

// BodyTypes lists the selectable body types in display order.
var BodyTypes = []BodyType{BodyTypeSlim, BodyTypeAverage, BodyTypeAthletic, BodyTypePlus}

func (b BodyType) Valid() bool {
	return slices.Contains(BodyTypes, b)
}

// UserProfile is the onboarding result and the ongoing preference record.
// Only PhotoBase64 matters for gating; every other field may stay unset.
type UserProfile struct {
	Name        *string   `json:"name,omitempty"`
	PhotoBase64 *string   `json:"photo_base64,omitempty"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	HeightCm    *int      `json:"height_cm,omitempty"`
	WeightKg    *int      `json:"weight_kg,omitempty"`
	BodyType    *BodyType `json:"body_type,omitempty"`
	SkinTone    *string   `json:"skin_tone,omitempty"`
	Styles      []string  `json:"styles,omitempty"`
	Budget      *string   `json:"budget,omitempty"`
	Gender      *string   `json:"gender,omitempty"`
}

// HasPhoto reports whether the profile carries an accepted photo.
func (p *UserProfile) HasPhoto() bool {
	return p != nil && p.PhotoBase64 != nil && *p.PhotoBase64 != ""
}

// Clone returns a deep copy so store snapshots never alias live state.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	c := &UserProfile{
		Name:        clonePtr(p.Name),
		PhotoBase64: clonePtr(p.PhotoBase64),
		AvatarURL:   clonePtr(p.AvatarURL),
		HeightCm:    clonePtr(p.HeightCm),
		WeightKg:    clonePtr(p.WeightKg),
		BodyType:    clonePtr(p.BodyType),
		SkinTone:    clonePtr(p.SkinTone),
		Budget:      clonePtr(p.Budget),
		Gender:      clonePtr(p.Gender),
	}
	if p.Styles != nil {
		c.Styles = slices.Clone(p.Styles)
	}
	return c
}

// ProfileUpdate is a partial profile. Nil fields are left untouched by Apply.
type ProfileUpdate struct {
	Name        *string   `json:"name,omitempty"`
	PhotoBase64 *string   `json:"photo_base64,omitempty"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	HeightCm    *int      `json:"height_cm,omitempty"`
	WeightKg    *int      `json:"weight_kg,omitempty"`
	BodyType    *BodyType `json:"body_type,omitempty"`
	SkinTone    *string   `json:"skin_tone,omitempty"`
	Styles      *[]string `json:"styles,omitempty"`
	Budget      *string   `json:"budget,omitempty"`
	Gender      *string   `json:"gender,omitempty"`
}

// Apply shallow-merges u into p.
func (u ProfileUpdate) Apply(p *UserProfile) {
	if u.Name != nil {
		p.Name = clonePtr(u.Name)
	}
	if u.PhotoBase64 != nil {
		p.PhotoBase64 = clonePtr(u.PhotoBase64)
	}
	if u.AvatarURL != nil {
		p.AvatarURL = clonePtr(u.AvatarURL)
	}
	if u.HeightCm != nil {
		p.HeightCm = clonePtr(u.HeightCm)
	}
	if u.WeightKg != nil {
		p.WeightKg = clonePtr(u.WeightKg)
	}
	if u.BodyType != nil {
		p.BodyType = clonePtr(u.BodyType)
	}
	if u.SkinTone != nil {
		p.SkinTone = clonePtr(u.SkinTone)
	}
	if u.Styles != nil {
		p.Styles = slices.Clone(*u.Styles)
	}
	if u.Budget != nil {
		p.Budget = clonePtr(u.Budget)
	}
	if u.Gender != nil {
		p.Gender = clonePtr(u.Gender)
	}
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Ptr is a small helper for building partial updates.
func Ptr[T any](v T) *T {
	return &v
}
