package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"lol-tracker/internal/riot"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

const UpstreamStatusHeader = "Upstream-Status"

// toConnectError maps an upstream failure onto a connect code. The upstream status travels in
// the Upstream-Status header and the error kind becomes the message.
func toConnectError(err error) error {
	var re *riot.Error
	if !errors.As(err, &re) {
		if errors.Is(err, context.DeadlineExceeded) {
			return connect.NewError(connect.CodeDeadlineExceeded, err)
		}
		return connect.NewError(connect.CodeInternal, err)
	}

	code := connect.CodeUnavailable
	switch re.Category() {
	case riot.CategoryNotFound:
		code = connect.CodeNotFound
	case riot.CategoryRateLimited:
		code = connect.CodeResourceExhausted
	case riot.CategoryUnauthenticated:
		code = connect.CodeUnauthenticated
	case riot.CategoryInvalidRequest:
		code = connect.CodeInvalidArgument
		if re.Status == http.StatusForbidden {
			code = connect.CodePermissionDenied
		}
	}

	cerr := connect.NewError(code, errors.New(re.Kind))
	cerr.Meta().Set(UpstreamStatusHeader, strconv.Itoa(re.Status))
	return cerr
}

func logInterceptor(logger zerolog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			l := zerolog.Ctx(ctx)
			if l.GetLevel() == zerolog.Disabled {
				l = &logger
			}
			evt := l.Info()
			if err != nil {
				evt = l.Warn().Err(err).Str("code", connect.CodeOf(err).String())
			}
			evt.Str("procedure", req.Spec().Procedure).
				Dur("duration", time.Since(start)).
				Msg("rpc handled")
			return resp, err
		}
	}
}
