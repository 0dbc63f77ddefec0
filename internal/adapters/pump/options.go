package pump

// Option applies a configuration option to the Pump.
type Option func(*Pump)

// WithSize sets the pump's buffered capacity.
func WithSize(size int) Option {
	return func(p *Pump) {
		if size > 0 {
			p.size = size
		}
	}
}
