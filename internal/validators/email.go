package validators

import (
	"context"
	"net"
	"net/mail"
	"strings"
)

// Resolver is the part of net.Resolver used for domain checks.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// EmailChecker verifies an address parses and its domain can receive mail.
type EmailChecker struct {
	resolver Resolver
}

func NewEmailChecker(r Resolver) *EmailChecker {
	if r == nil {
		r = net.DefaultResolver
	}
	return &EmailChecker{resolver: r}
}

func (ec *EmailChecker) IsEmailDomainValid(ctx context.Context, email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != strings.TrimSpace(email) {
		return false
	}

	at := strings.LastIndex(addr.Address, "@")
	if at < 0 || at == len(addr.Address)-1 {
		return false
	}
	domain := addr.Address[at+1:]

	if mx, err := ec.resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := ec.resolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
