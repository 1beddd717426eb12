package token

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/aionhq/gate/auth"
	"github.com/aionhq/gate/config"
	"github.com/aionhq/gate/datastore"
	"github.com/aionhq/gate/mocks"
	"github.com/aionhq/gate/pkg/log"
)

func TestTokenRealm_Authenticate(t *testing.T) {
	jwt := NewJwt(&config.JwtOptions{})

	user := &datastore.User{UID: "123456"}
	token, err := jwt.GenerateToken(user)
	require.Nil(t, err)

	type args struct {
		cred *auth.Credential
	}

	tests := []struct {
		name       string
		args       args
		dbFn       func(userRepo *mocks.MockUserRepository)
		want       *auth.Principal
		wantErr    bool
		wantErrMsg string
	}{
		{
			name: "should_authenticate_successfully",
			args: args{
				cred: &auth.Credential{
					Type:  auth.CredentialTypeBearer,
					Token: token.AccessToken,
				},
			},
			dbFn: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().FindActiveUserByID(gomock.Any(), "123456").Times(1).Return(&datastore.User{
					UID:       "123456",
					Email:     "test@example.com",
					FirstName: "test",
					LastName:  "user",
					PlanTier:  auth.TierPro,
				}, nil)
				userRepo.EXPECT().UpdateLastLogin(gomock.Any(), "123456", gomock.Any()).Times(1).Return(nil)
			},
			want: &auth.Principal{
				UserID:      "123456",
				Email:       "test@example.com",
				DisplayName: "test user",
				PlanTier:    auth.TierPro,
				Roles:       []auth.Role{auth.RoleUser, auth.RolePro},
			},
		},

		{
			name: "should_authenticate_when_last_login_update_fails",
			args: args{
				cred: &auth.Credential{
					Type:  auth.CredentialTypeBearer,
					Token: token.AccessToken,
				},
			},
			dbFn: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().FindActiveUserByID(gomock.Any(), "123456").Times(1).Return(&datastore.User{
					UID:      "123456",
					Email:    "test@example.com",
					PlanTier: auth.TierFree,
				}, nil)
				userRepo.EXPECT().UpdateLastLogin(gomock.Any(), "123456", gomock.Any()).Times(1).Return(fmt.Errorf("update failed"))
			},
			want: &auth.Principal{
				UserID:      "123456",
				Email:       "test@example.com",
				DisplayName: "test@example.com",
				PlanTier:    auth.TierFree,
				Roles:       []auth.Role{auth.RoleUser},
			},
		},

		{
			name: "should_error_for_wrong_cred_type",
			args: args{
				cred: &auth.Credential{
					Type: auth.CredentialTypeAPIKey,
				},
			},
			dbFn:       nil,
			want:       nil,
			wantErr:    true,
			wantErrMsg: fmt.Sprintf("%s only authenticates credential type BEARER", auth.TokenRealmName),
		},

		{
			name: "should_error_for_invalid_token",
			args: args{
				cred: &auth.Credential{
					Type:  auth.CredentialTypeBearer,
					Token: ulid.Make().String(),
				},
			},
			dbFn:       nil,
			want:       nil,
			wantErr:    true,
			wantErrMsg: "invalid token",
		},

		{
			name: "should_error_when_user_not_found",
			args: args{
				cred: &auth.Credential{
					Type:  auth.CredentialTypeBearer,
					Token: token.AccessToken,
				},
			},
			dbFn: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().FindActiveUserByID(gomock.Any(), "123456").Times(1).Return(nil, datastore.ErrUserNotFound)
			},
			want:       nil,
			wantErr:    true,
			wantErrMsg: "invalid token",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			userRepo := mocks.NewMockUserRepository(ctrl)
			tr := NewTokenRealm(userRepo, jwt, log.NewLogger(os.Stderr))

			if tc.dbFn != nil {
				tc.dbFn(userRepo)
			}

			got, err := tr.Authenticate(context.Background(), tc.args.cred)
			if tc.wantErr {
				require.ErrorContains(t, err, tc.wantErrMsg)
				require.ErrorIs(t, err, auth.ErrCredentialNotFound)
				return
			}

			require.Nil(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestTokenRealm_SurfacesStoreErrors(t *testing.T) {
	jwt := NewJwt(&config.JwtOptions{})

	tok, err := jwt.GenerateToken(&datastore.User{UID: "123456"})
	require.Nil(t, err)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	userRepo.EXPECT().FindActiveUserByID(gomock.Any(), "123456").Times(1).Return(nil, fmt.Errorf("pq: connection refused"))

	tr := NewTokenRealm(userRepo, jwt, log.NewLogger(os.Stderr))

	_, err = tr.Authenticate(context.Background(), &auth.Credential{
		Type:  auth.CredentialTypeBearer,
		Token: tok.AccessToken,
	})
	require.ErrorContains(t, err, "connection refused")
	require.NotErrorIs(t, err, auth.ErrCredentialNotFound)
}

func TestJwt_ValidateExpiredToken(t *testing.T) {
	jwt := &Jwt{Secret: "test-secret", Expiry: -10, RefreshSecret: "test-refresh", RefreshExpiry: -10}

	token, err := jwt.GenerateToken(&datastore.User{UID: "123456"})
	require.Nil(t, err)

	_, err = jwt.ValidateAccessToken(token.AccessToken)
	require.ErrorIs(t, err, ErrTokenExpired)

	_, err = jwt.ValidateRefreshToken(token.RefreshToken)
	require.ErrorIs(t, err, ErrTokenExpired)
}
