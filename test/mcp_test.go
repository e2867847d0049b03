package test

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2beens/vibefit/internal/fitness"
	vibefitmcp "github.com/2beens/vibefit/internal/mcp"
)

// secretTransport adds the MCP shared secret to every request.
type secretTransport struct {
	secret string
	next   http.RoundTripper
}

func (t *secretTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(vibefitmcp.SecretHeader, t.secret)
	return t.next.RoundTrip(req)
}

func (s *IntegrationTestSuite) TestMCP() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	s.resetData(ctx)
	token := s.login(ctx)

	s.doJSON(ctx, "POST", "/workouts", token, benchWorkout(time.Now().UTC(), 105, 3), http.StatusCreated, nil)

	s.Run("no secret", func() {
		status, _ := s.doRequest(ctx, "POST", "/mcp", "", map[string]string{})
		s.Equal(http.StatusUnauthorized, status)
	})

	client := mcp.NewClient(&mcp.Implementation{Name: "vibefit-test", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: serverEndpoint + "/mcp",
		HTTPClient: &http.Client{
			Transport: &secretTransport{secret: testMCPSecret, next: http.DefaultTransport},
		},
	}, nil)
	s.Require().NoError(err)
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	s.Require().NoError(err)
	s.Len(tools.Tools, 6)

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_personal_records",
		Arguments: map[string]any{"exercise": "bench"},
	})
	s.Require().NoError(err)
	s.Require().False(res.IsError)

	var records []fitness.PersonalRecord
	s.Require().NoError(json.Unmarshal([]byte(res.Content[0].(*mcp.TextContent).Text), &records))
	s.Require().Len(records, 1)
	s.Equal(105.0, records[0].Weight)

	res, err = session.CallTool(ctx, &mcp.CallToolParams{Name: "get_streak", Arguments: map[string]any{}})
	s.Require().NoError(err)
	var streak vibefitmcp.StreakResult
	s.Require().NoError(json.Unmarshal([]byte(res.Content[0].(*mcp.TextContent).Text), &streak))
	s.Equal(1, streak.Streak)
}
