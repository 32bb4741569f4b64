package mock

import "net/http/httptest"

// HTTPTestAuthorizationServer runs the authority on a local listener
type HTTPTestAuthorizationServer struct {
	*AuthorizationService
	Server *httptest.Server
}

func NewHTTPTestAuthorizationServer(opts ...Option) (*HTTPTestAuthorizationServer, error) {
	service, err := NewAuthorizationService(opts...)
	if err != nil {
		return nil, err
	}
	server := &HTTPTestAuthorizationServer{
		AuthorizationService: service,
	}
	server.Server = httptest.NewServer(service.Handler())
	service.Issuer = server.Server.URL + "/v2.0"
	return server, nil
}

func (s *HTTPTestAuthorizationServer) JwksURL() string {
	return s.Server.URL + JwksURI
}

func (s *HTTPTestAuthorizationServer) TokenURL() string {
	return s.Server.URL + TokenURI
}

func (s *HTTPTestAuthorizationServer) Close() {
	if s.Server != nil {
		s.Server.Close()
	}
	s.Server = nil
}
