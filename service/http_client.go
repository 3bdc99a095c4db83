package service

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/aig-studio/artist-image-generator/common/config"
	"golang.org/x/net/proxy"
)

var (
	httpClientOnce  sync.Once
	httpClient      *http.Client
	proxyClientLock sync.Mutex
	proxyClients    = make(map[string]*http.Client)
)

func defaultTimeout() time.Duration {
	if config.RelayTimeout > 0 {
		return time.Duration(config.RelayTimeout) * time.Second
	}
	return 5 * time.Minute
}

// GetHttpClient returns the shared upstream client, going through RELAY_PROXY when set.
func GetHttpClient() *http.Client {
	httpClientOnce.Do(func() {
		client, err := NewProxyHttpClient(config.RelayProxy)
		if err != nil {
			client = &http.Client{Timeout: defaultTimeout()}
		}
		httpClient = client
	})
	return httpClient
}

func NewProxyHttpClient(proxyURL string) (*http.Client, error) {
	if proxyURL == "" {
		return &http.Client{Timeout: defaultTimeout()}, nil
	}

	proxyClientLock.Lock()
	if client, ok := proxyClients[proxyURL]; ok {
		proxyClientLock.Unlock()
		return client, nil
	}
	proxyClientLock.Unlock()

	parsedURL, err := url.Parse(proxyURL)
	if err != nil {
		return nil, err
	}

	var client *http.Client
	switch parsedURL.Scheme {
	case "http", "https":
		client = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				ForceAttemptHTTP2:   true,
				Proxy:               http.ProxyURL(parsedURL),
			},
		}
	case "socks5", "socks5h":
		var auth *proxy.Auth
		if parsedURL.User != nil {
			auth = &proxy.Auth{User: parsedURL.User.Username()}
			if password, ok := parsedURL.User.Password(); ok {
				auth.Password = password
			}
		}
		// DNS is resolved by the proxy too, so socks5 behaves like socks5h
		dialer, err := proxy.SOCKS5("tcp", parsedURL.Host, auth, proxy.Direct)
		if err != nil {
			return nil, err
		}
		contextDialer, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("socks5 dialer for %s does not support contexts", parsedURL.Host)
		}
		client = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				ForceAttemptHTTP2:   true,
				DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
					return contextDialer.DialContext(ctx, network, addr)
				},
			},
		}
	default:
		return nil, fmt.Errorf("unsupported proxy scheme: %s, must be http, https, socks5 or socks5h", parsedURL.Scheme)
	}
	client.Timeout = defaultTimeout()

	proxyClientLock.Lock()
	proxyClients[proxyURL] = client
	proxyClientLock.Unlock()
	return client, nil
}
