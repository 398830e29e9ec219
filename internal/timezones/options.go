package timezones

type Options struct {
	SearchParam  string
	LimitParam   string
	DefaultLimit int
	MaxLimit     int

	// Zones overrides the embedded list when non-nil.
	Zones []string
}

type OptionFn func(*Options)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func DefaultOptions() Options {
	return Options{
		SearchParam:  "q",
		LimitParam:   "limit",
		DefaultLimit: 20,
		MaxLimit:     100,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 20
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 100
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.Zones != nil {
		opts.Zones = append([]string{}, opts.Zones...)
	}
	return opts
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) { o.DefaultLimit = limit }
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) { o.MaxLimit = limit }
}

func WithZones(zones []string) OptionFn {
	return func(o *Options) { o.Zones = zones }
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
