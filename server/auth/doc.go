// Package auth protects the tool host with bearer tokens issued by the tenant
// identity authority.
//
// The Service middleware validates RS256 access tokens against the published key
// set, checks issuer, audience and expiry, and places the caller Principal in the
// request context. The Exchanger trades the caller token for a downstream token
// using the on-behalf-of grant, caching results per principal and scope set.
package auth
