package sso

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconf "github.com/aws/aws-sdk-go-v2/config"
	awssso "github.com/aws/aws-sdk-go-v2/service/sso"

	errUtils "github.com/kolja-aws/kolja/errors"
	log "github.com/kolja-aws/kolja/pkg/logger"
)

// AccountRole is one assumable role in one account, in API enumeration order.
type AccountRole struct {
	AccountID   string
	AccountName string
	RoleName    string
}

// Client is the slice of the AWS SSO API needed for enumeration.
type Client interface {
	ListAccounts(ctx context.Context, params *awssso.ListAccountsInput, optFns ...func(*awssso.Options)) (*awssso.ListAccountsOutput, error)
	ListAccountRoles(ctx context.Context, params *awssso.ListAccountRolesInput, optFns ...func(*awssso.Options)) (*awssso.ListAccountRolesOutput, error)
}

// NewClient builds an SSO client for region. The enumeration calls
// authenticate with the cached access token, not with ambient credentials.
func NewClient(ctx context.Context, region string) (Client, error) {
	cfg, err := awsconf.LoadDefaultConfig(ctx, awsconf.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return awssso.NewFromConfig(cfg), nil
}

// AccountRoles enumerates every account visible to the token and every role
// within each account, following pagination to the end.
func AccountRoles(ctx context.Context, client Client, accessToken string) ([]AccountRole, error) {
	var roles []AccountRole
	var nextToken *string

	for {
		out, err := client.ListAccounts(ctx, &awssso.ListAccountsInput{
			AccessToken: aws.String(accessToken),
			NextToken:   nextToken,
		})
		if err != nil {
			return nil, errors.Join(errUtils.ErrListAccounts, err)
		}

		for _, account := range out.AccountList {
			accountID := aws.ToString(account.AccountId)
			accountRoles, err := rolesForAccount(ctx, client, accessToken, accountID, aws.ToString(account.AccountName))
			if err != nil {
				return nil, err
			}
			log.Debug("Enumerated account roles", "account", accountID, "roles", len(accountRoles))
			roles = append(roles, accountRoles...)
		}

		if aws.ToString(out.NextToken) == "" {
			break
		}
		nextToken = out.NextToken
	}

	return roles, nil
}

func rolesForAccount(ctx context.Context, client Client, accessToken, accountID, accountName string) ([]AccountRole, error) {
	var roles []AccountRole
	var nextToken *string

	for {
		out, err := client.ListAccountRoles(ctx, &awssso.ListAccountRolesInput{
			AccessToken: aws.String(accessToken),
			AccountId:   aws.String(accountID),
			NextToken:   nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: account %s: %w", errUtils.ErrListAccountRoles, accountID, err)
		}

		for _, role := range out.RoleList {
			roles = append(roles, AccountRole{
				AccountID:   accountID,
				AccountName: accountName,
				RoleName:    aws.ToString(role.RoleName),
			})
		}

		if aws.ToString(out.NextToken) == "" {
			break
		}
		nextToken = out.NextToken
	}

	return roles, nil
}
