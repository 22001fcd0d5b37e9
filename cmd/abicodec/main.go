// abicodec is a CLI which encodes and decodes smart contract values.
package main

import (
	"os"

	"github.com/erdgo/abicodec/pkg/log"
)

func main() {
	logger, err := log.NewDefaultProductionLogger()
	if err != nil {
		panic(err)
	}
	app := newApp(os.Stdout, logger)
	if err := app.Run(os.Args); err != nil {
		logger.Errorf("Fail running application with %s", err)
		os.Exit(1)
	}
}
