package binaural

const (
	defaultMicDistance = 0.15
	defaultLowFreq     = 50.0
	defaultHighFreq    = 8000.0
)

type maskerConfig struct {
	micDistance    float64
	lowHz          float64
	highHz         float64
	method         MaskingMethod
	spatialFactor  float64
	temporalFactor float64
	enhanceFactor  float64
}

func defaultMaskerConfig(sampleRate float64) maskerConfig {
	high := defaultHighFreq
	if nyquist := sampleRate / 2; high > nyquist {
		high = nyquist
	}

	return maskerConfig{
		micDistance:    defaultMicDistance,
		lowHz:          defaultLowFreq,
		highHz:         high,
		method:         MethodRelative,
		spatialFactor:  1,
		temporalFactor: 1,
		enhanceFactor:  1,
	}
}

// Option configures a Masker.
type Option func(*maskerConfig)

// WithMicDistance sets the distance between the microphones in metres.
// Defaults to 0.15 m.
func WithMicDistance(metres float64) Option {
	return func(cfg *maskerConfig) {
		cfg.micDistance = metres
	}
}

// WithFrequencyRange sets the lower and upper bounds of the mel filter bank
// in Hz. Defaults to 50 Hz up to 8 kHz (capped at Nyquist).
func WithFrequencyRange(lowHz, highHz float64) Option {
	return func(cfg *maskerConfig) {
		cfg.lowHz = lowHz
		cfg.highHz = highHz
	}
}

// WithMethod selects the masking method. Defaults to [MethodRelative].
func WithMethod(m MaskingMethod) Option {
	return func(cfg *maskerConfig) {
		cfg.method = m
	}
}

// WithSpatialMaskingFactor sets the divisor applied to spatially rejected
// bins under [MethodFactor]. Must be >= 1; 3 is roughly -10 dB, 10 roughly
// -20 dB. Defaults to 1 (no attenuation).
func WithSpatialMaskingFactor(factor float64) Option {
	return func(cfg *maskerConfig) {
		cfg.spatialFactor = factor
	}
}

// WithTemporalMaskingFactor sets the divisor applied to temporally rejected
// bins under [MethodFactor]. Must be >= 1. Defaults to 1 (no attenuation).
func WithTemporalMaskingFactor(factor float64) Option {
	return func(cfg *maskerConfig) {
		cfg.temporalFactor = factor
	}
}

// WithEnhanceFactor sets the gain applied to accepted bins. Must be >= 1;
// 2 is roughly +6 dB. Defaults to 1 (no enhancement).
func WithEnhanceFactor(factor float64) Option {
	return func(cfg *maskerConfig) {
		cfg.enhanceFactor = factor
	}
}
