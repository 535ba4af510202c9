// Package httpproxy provides the proxy aware HTTP client shared by nodes
// that call external APIs.
package httpproxy

import (
	"net/http"
	"net/url"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/effective-security/xlog"
	"golang.org/x/net/http/httpproxy"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/flownodes", "httpproxy")

// FromEnvironment is the source of the proxy configuration,
// it is a variable so tests can override it.
var FromEnvironment = httpproxy.FromEnvironment

// Enabled returns true if HTTP_PROXY or HTTPS_PROXY is configured.
func Enabled() bool {
	cfg := FromEnvironment()
	return cfg.HTTPProxy != "" || cfg.HTTPSProxy != ""
}

// ProxyFunc returns the proxy URL for the request,
// NO_PROXY is honored.
// The environment is read on each call, unlike http.ProxyFromEnvironment.
func ProxyFunc(req *http.Request) (*url.URL, error) {
	return FromEnvironment().ProxyFunc()(req.URL)
}

// NewHTTPClient returns an AWS SDK HTTP client which sends requests
// through the configured proxy.
func NewHTTPClient() *awshttp.BuildableClient {
	if Enabled() {
		cfg := FromEnvironment()
		logger.KV(xlog.DEBUG,
			"status", "proxy_enabled",
			"http_proxy", redact(cfg.HTTPProxy),
			"https_proxy", redact(cfg.HTTPSProxy),
			"no_proxy", cfg.NoProxy,
		)
	}
	return awshttp.NewBuildableClient().WithTransportOptions(func(tr *http.Transport) {
		tr.Proxy = ProxyFunc
	})
}

// redact removes the password from the proxy URL
func redact(proxy string) string {
	if proxy == "" {
		return ""
	}
	u, err := url.Parse(proxy)
	if err != nil {
		return "invalid"
	}
	return u.Redacted()
}
