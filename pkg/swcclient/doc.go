/*
Package swcclient is a typed client for the SWC fantasy football API.

Each endpoint is a method returning validated entity shapes. Transient failures
(network errors and 5xx responses) are retried with exponential backoff when
Config.Backoff is set; 4xx responses are terminal.

A secondary bulk path downloads full-snapshot CSV or Parquet files per entity
kind from a static location and parses them into the same shapes.

	client, err := swcclient.New(swcclient.DefaultConfig("http://localhost:8080"))
	if err != nil {
		return err
	}
	players, err := client.ListPlayers(ctx, swcclient.PlayerParams{FirstName: swcclient.Ptr("Tom")})
*/
package swcclient
