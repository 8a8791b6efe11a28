// Package all imports all available sources for side-effect registration.
//
// Import this package from your main to ensure all sources are registered:
//
//	import _ "github.com/pr-poehali-dev/tennis-bot-forecasting/internal/sources/all"
package all

import (
	_ "github.com/pr-poehali-dev/tennis-bot-forecasting/internal/sources/apisports"
	_ "github.com/pr-poehali-dev/tennis-bot-forecasting/internal/sources/sofascore"
	_ "github.com/pr-poehali-dev/tennis-bot-forecasting/internal/sources/ttfeed"
)
