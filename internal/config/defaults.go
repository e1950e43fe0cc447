package config

const (
	defaultListingsDir    = "~/shopsmith/listings"
	defaultOutputDir      = "~/shopsmith/output"
	defaultStagingDir     = "~/.local/share/shopsmith/staging"
	defaultLogDir         = "~/.local/share/shopsmith/logs"
	defaultAssetsDir      = "~/shopsmith/assets"
	defaultMigrationsDir  = "~/shopsmith/migrations"
	defaultListingOutput  = "etsy-listings.xlsx"
	defaultListingQty     = 4
	defaultListingCategry = "Art & Collectibles"
	defaultSKUPrefix      = "SHP"

	defaultVoiceBaseURL = "https://api.elevenlabs.io"
	defaultVoiceModel   = "eleven_multilingual_v2"
	defaultVoiceTimeout = 120
	defaultVoiceWorkers = 1

	defaultPosterWidth  = 2000
	defaultPosterHeight = 2000
	defaultPosterOutput = "poster.png"

	defaultPromoFrameRate  = 30
	defaultPromoGapSeconds = 0.3
	defaultCaptureTimeout  = 600
	defaultEncodeTimeout   = 600
	defaultPromoCRF        = 18

	defaultBackendTimeout   = 30
	defaultChatTable        = "thought_messages"
	defaultChatSampleLimit  = 40
	defaultNotifyReqTimeout = 10

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ListingsDir:   defaultListingsDir,
			OutputDir:     defaultOutputDir,
			StagingDir:    defaultStagingDir,
			LogDir:        defaultLogDir,
			AssetsDir:     defaultAssetsDir,
			MigrationsDir: defaultMigrationsDir,
		},
		Listing: Listing{
			OutputFile:    defaultListingOutput,
			Quantity:      defaultListingQty,
			Category:      defaultListingCategry,
			ShopSKUPrefix: defaultSKUPrefix,
		},
		Voice: Voice{
			BaseURL:        defaultVoiceBaseURL,
			Model:          defaultVoiceModel,
			TimeoutSeconds: defaultVoiceTimeout,
			Concurrency:    defaultVoiceWorkers,
		},
		Poster: Poster{
			Width:      defaultPosterWidth,
			Height:     defaultPosterHeight,
			OutputFile: defaultPosterOutput,
		},
		Promo: Promo{
			FrameRate:             defaultPromoFrameRate,
			GapSeconds:            defaultPromoGapSeconds,
			CaptureTimeoutSeconds: defaultCaptureTimeout,
			EncodeTimeoutSeconds:  defaultEncodeTimeout,
			CRF:                   defaultPromoCRF,
		},
		Backend: Backend{
			TimeoutSeconds: defaultBackendTimeout,
			ChatTable:      defaultChatTable,
			SampleLimit:    defaultChatSampleLimit,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyReqTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
