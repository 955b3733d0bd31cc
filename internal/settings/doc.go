// Package settings loads run settings and log trigger definitions from HCL.
//
// A settings file may contain one optional `settings` block and any number of
// `trigger` blocks:
//
//	settings {
//	  protocol = "ssmcan"
//	  trigger  = "engine"
//	  ecu_id   = env.ECU_ID
//	}
//
//	trigger "boost" {
//	  requires = ["P7:psi"]
//	  condition "start" {
//	    comment = "Start log when boost > 5 psi"
//	    rpn     = ["Manifold_Relative_Pressure_(psi)", 5, ">"]
//	  }
//	}
//
// The built-in `defogger` and `engine` triggers are always available and may
// be overridden by a file defining a trigger of the same name.
package settings
