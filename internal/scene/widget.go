package scene

import "fmt"

type Alignment int

const (
	AlignNone Alignment = iota
	AlignStretch
	AlignCenter
)

type WidgetKind int

const (
	WidgetViewport WidgetKind = iota
	WidgetLabel
)

// WidgetConfig describes a widget. Zero values mean defaults.
type WidgetConfig struct {
	Kind       WidgetKind
	Name       string
	HAlign     Alignment
	VAlign     Alignment
	Text       string
	Focus      bool
	Controller *PlayerController
	Rendering  *RenderingParameters
}

type Widget struct {
	Config WidgetConfig
}

func NewWidget(cfg WidgetConfig) (*Widget, error) {
	if cfg.Kind == WidgetViewport && cfg.Controller == nil {
		return nil, fmt.Errorf("viewport widget %q needs a player controller", cfg.Name)
	}
	if cfg.Kind == WidgetViewport && cfg.Rendering == nil {
		cfg.Rendering = cfg.Controller.Rendering
	}
	return &Widget{Config: cfg}, nil
}

// Desktop is the root of the widget tree.
type Desktop struct {
	widgets []*Widget
	focus   *Widget
	title   string
}

func NewDesktop(title string) *Desktop {
	return &Desktop{title: title}
}

func (d *Desktop) Title() string { return d.title }

func (d *Desktop) AddWidget(w *Widget) {
	d.widgets = append(d.widgets, w)
	if w.Config.Focus {
		d.focus = w
	}
}

func (d *Desktop) Widgets() []*Widget {
	return append([]*Widget(nil), d.widgets...)
}

// Focused returns the widget holding input focus, or nil.
func (d *Desktop) Focused() *Widget { return d.focus }
