package main

import (
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/app/services/shared/auth"
	"doctor-appointment-service/internal/pkg/constvars"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

// devtoken mints a bearer token signed with JWT_SECRET for local testing.
func main() {
	id := flag.String("id", "", "account id carried in the id claim")
	role := flag.String("role", constvars.RoleUser, "account role, doctor or user")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	version := flag.Bool("version", false, "print build version and exit")
	flag.Parse()

	if *version {
		fmt.Printf("Version: %s\nTag: %s\n", Version, Tag)
		return
	}
	if *id == "" {
		fmt.Fprintln(os.Stderr, "missing -id")
		os.Exit(2)
	}
	if *role != constvars.RoleUser && *role != constvars.RoleDoctor {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(2)
	}

	internalConfig := config.NewInternalConfig()
	resolver := auth.NewJWTPrincipalResolver(internalConfig.JWT.Secret, *ttl, zap.NewNop())

	token, err := resolver.CreateToken(models.Principal{ID: *id, Role: *role})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
