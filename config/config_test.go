package config

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	c := Config{
		"PORT":     "9000",
		"BAD_INT":  "nine",
		"DEBUG":    "true",
		"ORIGINS":  "https://a.dev, ,https://b.dev",
		"EMPTY":    "",
		"DEADLINE": "30",
	}

	require.Equal(t, "9000", GetString(c, "PORT", "8080"))
	require.Equal(t, "8080", GetString(c, "EMPTY", "8080"))
	require.Equal(t, "x", GetString(nil, "PORT", "x"))
	require.Equal(t, 9000, GetInt(c, "PORT", 1))
	require.Equal(t, 1, GetInt(c, "BAD_INT", 1))
	require.True(t, GetBool(c, "DEBUG", false))
	require.False(t, GetBool(c, "MISSING", false))
	require.Equal(t, []string{"https://a.dev", "https://b.dev"}, GetStrings(c, "ORIGINS"))
	require.Nil(t, GetStrings(c, "MISSING"))
	require.Equal(t, 30*time.Second, GetSeconds(c, "DEADLINE", 10))
}

func TestMerge(t *testing.T) {
	c := Config{"A": "env"}
	c.Merge(map[string]string{"A": "ssm", "B": "ssm"}, false)
	require.Equal(t, "env", c["A"])
	require.Equal(t, "ssm", c["B"])

	c.Merge(map[string]string{"A": "forced"}, true)
	require.Equal(t, "forced", c["A"])
}

type fakeSSM struct {
	pages []*ssm.GetParametersByPathOutput
	calls int
}

func (f *fakeSSM) GetParametersByPath(_ context.Context, _ *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	page := f.pages[f.calls]
	f.calls++
	return page, nil
}

func TestFetchParametersFollowsPages(t *testing.T) {
	client := &fakeSSM{pages: []*ssm.GetParametersByPathOutput{
		{
			Parameters: []types.Parameter{{Name: aws.String("/folio/prod/DB_HOST"), Value: aws.String("db.internal")}},
			NextToken:  aws.String("next"),
		},
		{
			Parameters: []types.Parameter{{Name: aws.String("/folio/prod/JWT_SECRET"), Value: aws.String("s3cret")}},
		},
	}}

	params, err := fetchParameters(context.Background(), client, "/folio/prod")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"DB_HOST": "db.internal", "JWT_SECRET": "s3cret"}, params)
	require.Equal(t, 2, client.calls)
}
