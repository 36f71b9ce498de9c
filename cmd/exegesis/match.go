package main

import (
	"fmt"

	"github.com/fwojciec/exegesis"
)

// Run executes the match command. URLs are matched without being fetched.
func (c *MatchCmd) Run(deps *Dependencies) error {
	for _, url := range c.URLs {
		rule, err := deps.Rules.Find(&exegesis.Website{URL: url})
		if exegesis.ErrorCode(err) == exegesis.ENORULE {
			fmt.Fprintf(deps.Stdout, "%s\t(no rule)\n", url)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s\t%s\n", url, rule.Name)
	}
	return nil
}
