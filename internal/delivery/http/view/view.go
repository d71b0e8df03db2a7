// Package view projects a session onto the JSON view of one screen.
package view

import (
	"fmt"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/flow"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/onboarding"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/tryon"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/wardrobe"
)

// Screen is the rendered state of the session's current screen. Exactly one
// of the per-screen sections is set.
type Screen struct {
	Screen     domain.Screen  `json:"screen"`
	Requested  domain.Screen  `json:"requested,omitempty"`
	Redirected bool           `json:"redirected"`
	Back       *domain.Screen `json:"back,omitempty"`
	Nav        []flow.NavItem `json:"nav,omitempty"`

	Welcome      *Welcome          `json:"welcome,omitempty"`
	PhotoUpload  *PhotoUpload      `json:"photo_upload,omitempty"`
	Measurements *Measurements     `json:"measurements,omitempty"`
	Styles       *StylePreferences `json:"style_preferences,omitempty"`
	Dashboard    *Dashboard        `json:"dashboard,omitempty"`
	TryOn        *TryOn            `json:"try_on,omitempty"`
	Wardrobe     *Wardrobe         `json:"wardrobe,omitempty"`
	Stylist      *Stylist          `json:"stylist,omitempty"`
}

type Welcome struct {
	Title     string   `json:"title"`
	Tagline   string   `json:"tagline"`
	PoweredBy []string `json:"powered_by"`
}

type PhotoUpload struct {
	Preview    string `json:"preview,omitempty"`
	Analyzing  bool   `json:"analyzing"`
	Error      string `json:"error,omitempty"`
	Feedback   string `json:"feedback,omitempty"`
	CanAdvance bool   `json:"can_advance"`
}

type Measurements struct {
	HeightCm   int               `json:"height_cm"`
	MinHeight  int               `json:"min_height_cm"`
	MaxHeight  int               `json:"max_height_cm"`
	WeightKg   *int              `json:"weight_kg,omitempty"`
	BodyType   domain.BodyType   `json:"body_type"`
	BodyTypes  []domain.BodyType `json:"body_types"`
	CanAdvance bool              `json:"can_advance"`
}

type StyleChoice struct {
	onboarding.StyleOption
	Selected bool `json:"selected"`
}

type StylePreferences struct {
	Options    []StyleChoice `json:"options"`
	Selected   []string      `json:"selected"`
	Generating bool          `json:"generating"`
	CanFinish  bool          `json:"can_finish"`
}

type Suggestion struct {
	Badge  string        `json:"badge"`
	Text   string        `json:"text"`
	Action string        `json:"action"`
	Target domain.Screen `json:"target"`
}

type QuickAction struct {
	Label  string        `json:"label"`
	Target domain.Screen `json:"target"`
}

type Dashboard struct {
	Greeting     string        `json:"greeting"`
	Photo        string        `json:"photo,omitempty"`
	Styles       []string      `json:"styles"`
	Suggestion   Suggestion    `json:"suggestion"`
	QuickActions []QuickAction `json:"quick_actions"`
	Trending     []string      `json:"trending"`
}

type TryOn struct {
	Step         domain.TryOnStep    `json:"step"`
	ProfilePhoto string              `json:"profile_photo,omitempty"`
	GarmentImage string              `json:"garment_image,omitempty"`
	CanGenerate  bool                `json:"can_generate"`
	Stage        domain.TryOnStage   `json:"stage,omitempty"`
	Progress     int                 `json:"progress"`
	StatusText   string              `json:"status_text,omitempty"`
	ResultImage  string              `json:"result_image,omitempty"`
	Fit          *domain.FitAnalysis `json:"fit,omitempty"`
	Notice       string              `json:"notice,omitempty"`
}

type Wardrobe struct {
	Tabs      []wardrobe.Tab        `json:"tabs"`
	ActiveTab string                `json:"active_tab"`
	Items     []domain.WardrobeItem `json:"items"`
}

type Stylist struct {
	Messages []domain.ChatMessage `json:"messages"`
	IsTyping bool                 `json:"is_typing"`
}

// Options tweak how a screen is rendered.
type Options struct {
	Requested  domain.Screen
	Redirected bool
	// WardrobeTab filters the wardrobe grid; empty means all items.
	WardrobeTab string
}

// Render builds the view of s's current screen.
func Render(s *domain.Session, nav []flow.NavItem, opts Options) (*Screen, error) {
	current := s.Screens.Current
	if current == "" {
		current = domain.ScreenWelcome
	}
	out := &Screen{
		Screen:     current,
		Redirected: opts.Redirected,
	}
	if opts.Redirected {
		out.Requested = opts.Requested
	}
	if prev, ok := current.Previous(); ok {
		out.Back = &prev
	}
	if current.IsMain() {
		out.Nav = nav
	}

	switch current {
	case domain.ScreenWelcome:
		out.Welcome = &Welcome{
			Title:     "MirrorFit",
			Tagline:   "Your personal AI stylist and virtual fitting room.",
			PoweredBy: []string{"Gemini 3 Flash", "Pro Vision"},
		}
	case domain.ScreenPhotoUpload:
		p := s.Screens.Photo
		out.PhotoUpload = &PhotoUpload{
			Preview:    p.Preview,
			Analyzing:  p.Analyzing,
			Error:      p.Error,
			Feedback:   p.Feedback,
			CanAdvance: onboarding.CanLeavePhotoUpload(s),
		}
	case domain.ScreenMeasurements:
		m := s.Screens.Measurements
		out.Measurements = &Measurements{
			HeightCm:   m.HeightCm,
			MinHeight:  domain.MinHeightCm,
			MaxHeight:  domain.MaxHeightCm,
			WeightKg:   m.WeightKg,
			BodyType:   m.BodyType,
			BodyTypes:  domain.BodyTypes,
			CanAdvance: true,
		}
	case domain.ScreenStylePreferences:
		out.Styles = renderStyles(s.Screens.Styles)
	case domain.ScreenDashboard:
		out.Dashboard = renderDashboard(s.Profile)
	case domain.ScreenTryOn:
		out.TryOn = renderTryOn(s)
	case domain.ScreenWardrobe:
		items, err := wardrobe.Filter(s.Wardrobe, opts.WardrobeTab)
		if err != nil {
			return nil, err
		}
		tab := opts.WardrobeTab
		if tab == "" {
			tab = "All"
		}
		out.Wardrobe = &Wardrobe{Tabs: wardrobe.Tabs, ActiveTab: tab, Items: items}
	case domain.ScreenStylist:
		st := &Stylist{Messages: make([]domain.ChatMessage, 0, len(s.Screens.Chat.Messages))}
		for _, m := range s.Screens.Chat.Messages {
			if m.IsTyping {
				st.IsTyping = true
				continue
			}
			st.Messages = append(st.Messages, m)
		}
		out.Stylist = st
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrScreenNotFound, current)
	}
	return out, nil
}

func renderStyles(st domain.StylePreferencesState) *StylePreferences {
	selected := st.Selected
	if selected == nil {
		selected = []string{}
	}
	v := &StylePreferences{
		Options:    make([]StyleChoice, 0, len(onboarding.StyleOptions)),
		Selected:   selected,
		Generating: st.Generating,
		CanFinish:  len(selected) > 0 && !st.Generating,
	}
	for _, o := range onboarding.StyleOptions {
		choice := StyleChoice{StyleOption: o}
		for _, id := range selected {
			if id == o.ID {
				choice.Selected = true
				break
			}
		}
		v.Options = append(v.Options, choice)
	}
	return v
}

func renderDashboard(p *domain.UserProfile) *Dashboard {
	d := &Dashboard{
		Greeting: "Hello",
		Styles:   []string{},
		Suggestion: Suggestion{
			Badge:  "✨ Gemini Suggestion",
			Text:   "Based on your casual style and today's weather, try the white linen shirt with denim jeans.",
			Action: "Visualize This Look",
			Target: domain.ScreenTryOn,
		},
		QuickActions: []QuickAction{
			{Label: "Virtual Try-On", Target: domain.ScreenTryOn},
			{Label: "Ask Stylist", Target: domain.ScreenStylist},
		},
		Trending: make([]string, 0, 4),
	}
	for i := 1; i <= 4; i++ {
		d.Trending = append(d.Trending, fmt.Sprintf("https://picsum.photos/300/400?random=%d", i))
	}
	if p == nil {
		return d
	}
	if p.Name != nil {
		d.Greeting = "Hello, " + *p.Name
	}
	if p.PhotoBase64 != nil {
		d.Photo = *p.PhotoBase64
	}
	if len(p.Styles) > 0 {
		d.Styles = p.Styles
	}
	return d
}

func renderTryOn(s *domain.Session) *TryOn {
	t := s.Screens.TryOn
	v := &TryOn{
		Step:         t.Step,
		GarmentImage: t.GarmentImage,
		CanGenerate:  tryon.CanGenerate(s),
		Stage:        t.Stage,
		Progress:     t.Progress,
		StatusText:   t.StatusText,
		ResultImage:  t.ResultImage,
		Fit:          t.Fit,
		Notice:       t.Notice,
	}
	if s.Profile.HasPhoto() {
		v.ProfilePhoto = *s.Profile.PhotoBase64
	}
	return v
}
