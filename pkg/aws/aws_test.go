package aws

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloudWatch struct {
	inputs []*cloudwatch.PutMetricDataInput
}

func (f *fakeCloudWatch) PutMetricData(_ context.Context, in *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.inputs = append(f.inputs, in)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

type fakeSNS struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, in)
	return &sns.PublishOutput{}, f.err
}

type fakeSecrets struct {
	values map[string]string
	calls  int
}

func (f *fakeSecrets) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	v, ok := f.values[*in.SecretId]
	if !ok {
		return nil, errors.New("ResourceNotFoundException")
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: sdkaws.String(v)}, nil
}

func TestMetricsClient_DisabledSendsNothing(t *testing.T) {
	api := &fakeCloudWatch{}
	m := newMetricsClient(api, "", false)

	require.NoError(t, m.RecordCount(context.Background(), MetricHTTPRequests, nil))
	assert.Empty(t, api.inputs)
	assert.False(t, m.IsEnabled())
}

func TestMetricsClient_RecordLatency(t *testing.T) {
	api := &fakeCloudWatch{}
	m := newMetricsClient(api, "Storefront", true)

	err := m.RecordLatency(context.Background(), MetricHTTPLatency, 250*time.Millisecond, map[string]string{"Method": "GET"})
	require.NoError(t, err)
	require.Len(t, api.inputs, 1)
	assert.Equal(t, "Storefront", *api.inputs[0].Namespace)
	datum := api.inputs[0].MetricData[0]
	assert.Equal(t, MetricHTTPLatency, *datum.MetricName)
	assert.Equal(t, float64(250), *datum.Value)
	require.Len(t, datum.Dimensions, 1)
	assert.Equal(t, "Method", *datum.Dimensions[0].Name)
}

func TestMetricsClient_NilIsDisabled(t *testing.T) {
	var m *MetricsClient
	assert.False(t, m.IsEnabled())
}

func TestSNSClient_Publish(t *testing.T) {
	api := &fakeSNS{}
	c := &SNSClient{client: api}

	err := c.Publish(context.Background(), "arn:aws:sns:us-east-1:000000000000:checkout", []byte(`{"ok":true}`))
	require.NoError(t, err)
	require.Len(t, api.inputs, 1)
	assert.Equal(t, `{"ok":true}`, *api.inputs[0].Message)
}

func TestSNSClient_PublishRejectsEmptyTopic(t *testing.T) {
	api := &fakeSNS{}
	c := &SNSClient{client: api}

	assert.Error(t, c.Publish(context.Background(), "", []byte("x")))
	assert.Empty(t, api.inputs)
}

func TestSNSClient_PublishWrapsErrors(t *testing.T) {
	c := &SNSClient{client: &fakeSNS{err: errors.New("throttled")}}

	err := c.Publish(context.Background(), "arn:topic", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestSecretsClient_CachesValues(t *testing.T) {
	api := &fakeSecrets{values: map[string]string{"storefront/STRIPE_SECRET_KEY": "sk_test_123"}}
	s := newSecretsClient(api)

	for i := 0; i < 2; i++ {
		v, err := s.GetSecret(context.Background(), "storefront/STRIPE_SECRET_KEY")
		require.NoError(t, err)
		assert.Equal(t, "sk_test_123", v)
	}
	assert.Equal(t, 1, api.calls)
}

func TestSecretsClient_GetSecretMap(t *testing.T) {
	api := &fakeSecrets{values: map[string]string{
		"storefront/DB_CREDENTIALS": `{"DB_USER":"suju","DB_PASS":"secret"}`,
		"storefront/BROKEN":         `not json`,
	}}
	s := newSecretsClient(api)

	m, err := s.GetSecretMap(context.Background(), "storefront/DB_CREDENTIALS")
	require.NoError(t, err)
	assert.Equal(t, "suju", m["DB_USER"])

	_, err = s.GetSecretMap(context.Background(), "storefront/BROKEN")
	assert.Error(t, err)

	_, err = s.GetSecretMap(context.Background(), "storefront/MISSING")
	assert.Error(t, err)
}

func testAWSConfig() sdkaws.Config {
	return sdkaws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
	}
}

func TestImagePresigner_PresignProductImage(t *testing.T) {
	p := NewImagePresigner(testAWSConfig(), "suju-images", "/catalog/", "cdn.example.com", false)

	upload, err := p.PresignProductImage(context.Background(), "../Snake Plant.png", "image/png", 15*time.Minute)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(upload.Key, "catalog/products/"))
	assert.True(t, strings.HasSuffix(upload.Key, "/Snake-Plant.png"))
	assert.Contains(t, upload.URL, "X-Amz-Signature")
	assert.Contains(t, upload.URL, "suju-images")
	assert.Equal(t, "https://cdn.example.com/"+upload.Key, upload.PublicURL)
}

func TestImagePresigner_DistinctKeysAndS3PublicURL(t *testing.T) {
	p := NewImagePresigner(testAWSConfig(), "suju-images", "", "", false)

	a, err := p.PresignProductImage(context.Background(), "fern.jpg", "image/jpeg", time.Minute)
	require.NoError(t, err)
	b, err := p.PresignProductImage(context.Background(), "fern.jpg", "image/jpeg", time.Minute)
	require.NoError(t, err)

	assert.NotEqual(t, a.Key, b.Key)
	assert.True(t, strings.HasPrefix(a.Key, "products/"))
	assert.Equal(t, "https://suju-images.s3.amazonaws.com/"+a.Key, a.PublicURL)
}
