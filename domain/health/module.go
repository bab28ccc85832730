package health

import (
	"go.uber.org/fx"

	"github.com/GitDDAN/padel-palms-proposal/domain/relay"
)

var Module = fx.Module("health",
	fx.Provide(
		func(up *relay.Upstream) UpstreamStatus { return up },
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)
