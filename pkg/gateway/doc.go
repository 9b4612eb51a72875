// Package gateway turns stateless action requests into calls on a stateful
// wallet toolkit client.
//
// A ClientCache keeps a single client keyed by the credential it was built
// for. Building a client is expensive (RPC dial, chain verification), so a
// repeated credential reuses the cached one; a different credential replaces
// it. The whole check-build-replace sequence runs under one mutex.
//
// Gateway.Execute validates a request, obtains a client, resolves the action
// by exact name, invokes it under a timeout and rewrites the output line of
// smart_swap results from smallest units into human units:
//
//	cache := gateway.NewClientCache(config.NewEnvSource(viper.New()), gateway.AgentkitFactory())
//	gw := gateway.New(cache, gateway.WithInvokeTimeout(time.Minute))
//
//	resp := gw.Execute(ctx, model.ActionRequest{
//		Credential: key,
//		ActionName: "get_balance",
//	})
//	fmt.Println(resp.HTTPStatus(), resp.Success, resp.Data, resp.Error)
//
// Failures carry a Kind that maps onto an HTTP status:
//
//	KindValidation          400
//	KindActionNotFound      404
//	KindTimeout             504
//	everything else         500
package gateway
