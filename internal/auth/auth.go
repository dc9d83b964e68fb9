package auth

import (
	"fmt"
	"net/http"

	"planshare/pkg/proto/identity_v1"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
)

var gClient identity_v1.IdentityV1Client

func InitClient(conn *grpc.ClientConn) {
	gClient = identity_v1.NewIdentityV1Client(conn)
}

// VerifyToken проверяет токен через identity-сервис и возвращает id принципала.
// Само приложение учётные данные не верифицирует.
func VerifyToken(r *http.Request) (string, error) {
	authToken := r.Header.Get("Authorization")
	if authToken == "" {
		return "", fmt.Errorf("no authorization header")
	}

	md := metadata.New(map[string]string{
		"Authorization": authToken,
	})
	ctx := metadata.NewOutgoingContext(r.Context(), md)

	userInfo, err := gClient.GetUser(ctx, &emptypb.Empty{})
	if err != nil {
		return "", err
	}

	return userInfo.GetUser().GetId(), nil
}
