// Command flexschema validates and inspects FlexPHP schema documents.
package main

import "github.com/flexphp/flex-schema/internal/cli"

func main() {
	cli.Execute()
}
