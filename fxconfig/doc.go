// Package fxconfig wires roconfig into go.uber.org/fx applications.
//
// Module provides the *roconfig.Config assembled by a Builder; Provide derives
// typed configuration sections from it:
//
//	fx.New(
//	    fxconfig.Module(roconfig.NewBuilder().
//	        WithFile("app.yaml", false).
//	        WithEnv("APP_", true)),
//	    fx.Provide(fxconfig.Provide[ServerConfig]("server")),
//	)
package fxconfig
