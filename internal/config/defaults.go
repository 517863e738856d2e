package config

const (
	defaultDataDir          = "~/.local/share/aircheck/public"
	defaultStateDir         = "~/.local/share/aircheck/state"
	defaultLogDir           = "~/.local/share/aircheck/logs"
	defaultBitrate          = "192k"
	defaultCaptureSeconds   = 3600
	defaultFFmpegBinary     = "ffmpeg"
	defaultFFprobeBinary    = "ffprobe"
	defaultMaxPartMiB       = 99
	defaultRetentionDays    = 21
	defaultLanguage         = "en-US"
	defaultExplicit         = "no"
	defaultFeedFile         = "feed.xml"
	defaultNotifyTimeout    = 10
	defaultPublishRemote    = "origin"
	defaultPublishBranch    = "main"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 60
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:  defaultDataDir,
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Stream: Stream{
			Bitrate:        defaultBitrate,
			CaptureSeconds: defaultCaptureSeconds,
			FFmpegBinary:   defaultFFmpegBinary,
			FFprobeBinary:  defaultFFprobeBinary,
		},
		Segmenter: Segmenter{
			MaxPartMiB: defaultMaxPartMiB,
		},
		Retention: Retention{
			Days: defaultRetentionDays,
		},
		Channel: Channel{
			Language: defaultLanguage,
			Explicit: defaultExplicit,
			FeedFile: defaultFeedFile,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Publish: Publish{
			Remote: defaultPublishRemote,
			Branch: defaultPublishBranch,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
