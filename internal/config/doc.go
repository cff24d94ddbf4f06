// Package config provides configuration parsing for elementview.
//
// The configuration is stored in elementview.json in the working
// directory. This package handles loading, saving, and validating it.
//
// # Configuration File Structure
//
//	{
//	  "viewport": {"width": 1280, "height": 720},
//	  "devicePixelRatio": 2,
//	  "export": {
//	    "format": "raster",
//	    "hidpi": true,
//	    "output": "exports",
//	    "s3": {
//	      "bucket": "plots",
//	      "prefix": "nightly/",
//	      "region": "eu-west-1"
//	    }
//	  },
//	  "inspector": {"addr": "localhost:7070"},
//	  "log": {"level": "debug"}
//	}
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Inspector:", cfg.Inspector.Addr)
package config
