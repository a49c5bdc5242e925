package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	data, _ := io.ReadAll(params.Body)
	f.body = string(data)
	return &s3.PutObjectOutput{}, f.err
}

func TestPutFile(t *testing.T) {
	api := &fakePutter{}
	client := NewClientWithAPI(api, "dex-dumps")
	require.NoError(t, client.PutFile(context.Background(), strings.NewReader("id\n"), "pokemons/a.csv", "text/csv"))
	assert.Equal(t, "dex-dumps", aws.ToString(api.input.Bucket))
	assert.Equal(t, "pokemons/a.csv", aws.ToString(api.input.Key))
	assert.Equal(t, "text/csv", aws.ToString(api.input.ContentType))
	assert.Equal(t, "id\n", api.body)
	assert.Equal(t, "dex-dumps", client.Bucket())
}

func TestPutFileWrapsError(t *testing.T) {
	denied := errors.New("access denied")
	client := NewClientWithAPI(&fakePutter{err: denied}, "dex-dumps")
	err := client.PutFile(context.Background(), strings.NewReader(""), "k", "text/csv")
	assert.ErrorIs(t, err, denied)
	assert.ErrorContains(t, err, "s3://dex-dumps/k")
}
