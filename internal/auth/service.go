package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/vibefit/pkg"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	TokenHeader      = "X-VIBEFIT-TOKEN"
	sessionKeyPrefix = "vibefit-session||"
	tokensSetKey     = "vibefit-sessions"
	tokenLength      = 35
)

var ErrWrongPassword = errors.New("wrong credentials")

type Admin struct {
	Username     string
	PasswordHash string
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Service struct {
	admin       *Admin
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewAuthService(
	admin *Admin,
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		admin:          admin,
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func (as *Service) Login(ctx context.Context, credentials Credentials, createdAt time.Time) (string, error) {
	if as.admin == nil ||
		credentials.Username != as.admin.Username ||
		!pkg.CheckPasswordHash(credentials.Password, as.admin.PasswordHash) {
		log.Tracef("failed login attempt for user: %s", credentials.Username)
		return "", ErrWrongPassword
	}

	token, err := as.RandStringFunc(tokenLength)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	sessionKey := sessionKeyPrefix + token
	cmdSet := as.redisClient.Set(ctx, sessionKey, createdAt.Unix(), 0)
	if err := cmdSet.Err(); err != nil {
		return "", err
	}

	// add token to list of sessions
	cmdSAdd := as.redisClient.SAdd(ctx, tokensSetKey, token)
	if err := cmdSAdd.Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Logout removes the session; false means there was no such session.
func (as *Service) Logout(ctx context.Context, token string) (bool, error) {
	sessionKey := sessionKeyPrefix + token
	createdAt, err := as.sessionCreatedAt(ctx, sessionKey)
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := as.removeSession(ctx, token); err != nil {
		return false, err
	}

	return createdAt.Unix() > 0, nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (as *Service) ScanAndClean(ctx context.Context) {
	cmd := as.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	sessionTokens := cmd.Val()
	if len(sessionTokens) == 0 {
		log.Debugln("=> auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("=> auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		createdAt, err := as.sessionCreatedAt(ctx, sessionKeyPrefix+token)
		if errors.Is(err, redis.Nil) {
			toRemove = append(toRemove, token)
			continue
		}
		if err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			continue
		}
		if time.Since(createdAt) > as.ttl {
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		if err := as.removeSession(ctx, token); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
		}
	}
	log.Debugf("=> auth service, scan and clean done, removed %d sessions", len(toRemove))
}

// ScheduleCleanup runs ScanAndClean on the given cron schedule, e.g. "@every 8h".
func (as *Service) ScheduleCleanup(ctx context.Context, schedule string) (*cron.Cron, error) {
	c := cron.New()
	if err := c.AddFunc(schedule, func() {
		as.ScanAndClean(ctx)
	}); err != nil {
		return nil, fmt.Errorf("add sessions cleanup job [%s]: %w", schedule, err)
	}
	c.Start()
	return c, nil
}

func (as *Service) sessionCreatedAt(ctx context.Context, sessionKey string) (time.Time, error) {
	cmd := as.redisClient.Get(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		return time.Time{}, err
	}

	createdAtUnix, err := strconv.ParseInt(cmd.Val(), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse session created at: %w", err)
	}
	return time.Unix(createdAtUnix, 0), nil
}

func (as *Service) removeSession(ctx context.Context, token string) error {
	if err := as.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return err
	}
	// remove token from the list of sessions
	return as.redisClient.SRem(ctx, tokensSetKey, token).Err()
}
