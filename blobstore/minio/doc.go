// Package minio serves dictionary artifacts from a MinIO bucket, or from any
// other S3-compatible server reachable with the MinIO client.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds: credentials.NewStaticV4(accessKey, secretKey, ""),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	e, err := henkan.Open(ctx, minioblob.NewStore(client, "dicts", "v1"))
//
// henkan-build publishes into the same layout with Put. The store needs no
// AWS configuration.
package minio
