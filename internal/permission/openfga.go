package permission

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nikolayk812/storefront/internal/domain"
	fga "github.com/openfga/go-sdk/client"
	"github.com/openfga/go-sdk/credentials"
)

const anonymousUser = "user:anonymous"

type OpenFGAConfig struct {
	APIURL   string
	StoreID  string
	APIToken string // optional
	ModelID  string // optional but recommended in prod
	// StoreName is the object permissions are checked against, as store:<name>.
	StoreName string
}

// OpenFGA checks permissions as relations on the store object: the relation is the
// permission codename and the user is user:<id> or user:anonymous.
type OpenFGA struct {
	c      *fga.OpenFgaClient
	object string
}

func NewOpenFGA(cfg OpenFGAConfig) (*OpenFGA, error) {
	conf := &fga.ClientConfiguration{
		ApiUrl:  cfg.APIURL,
		StoreId: cfg.StoreID,
	}

	// Pin a specific auth model if provided
	if cfg.ModelID != "" {
		conf.AuthorizationModelId = cfg.ModelID
	}

	if cfg.APIToken != "" {
		conf.Credentials = &credentials.Credentials{
			Method: credentials.CredentialsMethodApiToken,
			Config: &credentials.Config{ApiToken: cfg.APIToken},
		}
	}

	client, err := fga.NewSdkClient(conf)
	if err != nil {
		return nil, fmt.Errorf("fga.NewSdkClient: %w", err)
	}

	return &OpenFGA{
		c:      client,
		object: "store:" + cfg.StoreName,
	}, nil
}

func (o *OpenFGA) HasPerm(ctx context.Context, owner domain.Owner, perm domain.Permission) (bool, error) {
	checkReq := fga.ClientCheckRequest{
		User:     fgaUser(owner),
		Relation: perm.Codename(),
		Object:   o.object,
	}

	resp, err := o.c.Check(ctx).Body(checkReq).Execute()
	if err != nil {
		return false, fmt.Errorf("c.Check[%s %s]: %w", checkReq.User, checkReq.Relation, err)
	}

	return resp.Allowed != nil && *resp.Allowed, nil
}

func fgaUser(owner domain.Owner) string {
	if userID, ok := domain.UserID(owner); ok {
		return "user:" + strconv.FormatInt(userID, 10)
	}
	return anonymousUser
}
