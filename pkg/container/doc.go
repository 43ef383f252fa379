// Package container reads and writes material containers: JSON archives
// holding any number of named material node graphs.
//
// # Format
//
//	{
//	  "version": 1,
//	  "materials": [
//	    {
//	      "name": "Wire",
//	      "nodes": [
//	        {"name": "Wireframe", "type": "ShaderNodeWireframe",
//	         "location": [-400, 0], "inputs": {"Size": 0.02}},
//	        {"name": "Material Output", "type": "ShaderNodeOutputMaterial",
//	         "location": [0, 0]}
//	      ],
//	      "links": [
//	        {"from_node": "Wireframe", "from_socket": "Fac",
//	         "to_node": "Material Output", "to_socket": "Displacement"}
//	      ]
//	    }
//	  ]
//	}
//
// Node "inputs" and "outputs" hold socket default values keyed by socket
// name; sockets left out keep the registry default. Scalars are numbers,
// vectors and colors are arrays.
//
// # Lazy decoding
//
// [Open] only indexes materials by name. [Container.Material] decodes the
// graph of exactly one material on first use, so a container can be used
// even when other materials reference node types the registry lacks.
// [Container.Save] writes materials that were never decoded back verbatim.
//
// # Persistence
//
// [Container.Save] writes to a temporary file in the same directory and
// renames it over the original. A failed save leaves the original file
// untouched.
package container
