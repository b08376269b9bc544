// Package apigw adapts member operations to API Gateway proxy events, so each
// operation can be deployed as its own Lambda function.
package apigw

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"
	"github.com/sicko7947/members"
	"github.com/sicko7947/members/handler"
)

// LambdaHandler is the function signature lambda.Start expects for proxy events
type LambdaHandler func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Adapt wraps an operation. Errors escaping the operation become 400 or 500
// responses rather than Lambda invocation errors.
func Adapt(name string, op handler.Operation, logger zerolog.Logger) LambdaHandler {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		start := time.Now()
		logger := logger.With().Str("request_id", event.RequestContext.RequestID).Logger()

		resp, err := op(ctx, members.Request{
			Body:           event.Body,
			PathParameters: event.PathParameters,
		})
		if err != nil {
			status := members.StatusCodeForError(err)
			members.LogRequestCompleted(logger, name, status, time.Since(start))
			return errorResponse(status, err), nil
		}

		members.LogRequestCompleted(logger, name, resp.StatusCode, time.Since(start))
		return toProxyResponse(resp), nil
	}
}

func toProxyResponse(resp *members.Response) events.APIGatewayProxyResponse {
	out := events.APIGatewayProxyResponse{StatusCode: resp.StatusCode}
	if resp.HasBody() {
		out.Body = resp.BodyString()
		out.Headers = map[string]string{"Content-Type": "application/json"}
	}
	return out
}

func errorResponse(status int, err error) events.APIGatewayProxyResponse {
	body := map[string]string{"error": members.ErrorCode(err)}
	if members.IsMalformedInput(err) {
		body["message"] = err.Error()
	}

	data, _ := json.Marshal(body)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(data),
	}
}
